package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/app"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/domain"
	"github.com/gorilla/websocket"
)

// SessionHandler runs one quiz session per websocket connection. The client
// drives the state machine with typed messages; every accepted event is
// answered with a fresh session snapshot.
type SessionHandler struct {
	service  *app.SessionService
	upgrader websocket.Upgrader
}

func NewSessionHandler(service *app.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type identifyPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loadPayload struct {
	FormID string `json:"formId"`
}

type scanPayload struct {
	Code string `json:"code"`
}

type answerPayload struct {
	OptionIndex int `json:"optionIndex"`
}

type questionsLoaded struct {
	FormTitle      string `json:"formTitle"`
	TotalQuestions int    `json:"totalQuestions"`
}

type answerResult struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Awarded    int    `json:"awarded"`
	TotalScore int    `json:"totalScore"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and processes session events until the
// client disconnects. Events are handled one at a time on this goroutine,
// so no write coordination is needed.
func (h *SessionHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := h.service.NewSession()
	// A dropped connection mid-session still persists whatever was answered.
	defer h.service.Reset(r.Context(), session)

	h.sendSnapshot(conn, session)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "identify":
			var payload identifyPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid identify payload")
				continue
			}
			if err := h.service.Identify(session, domain.User{Name: payload.Name, Email: payload.Email}); err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendSnapshot(conn, session)

		case "loadQuestions":
			var payload loadPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid load payload")
				continue
			}
			set, err := h.service.LoadExternal(r.Context(), session, payload.FormID)
			if err != nil {
				// Recoverable: the client may retry or fall back to defaults.
				h.sendError(conn, err.Error())
				continue
			}
			h.send(conn, outboundMessage[questionsLoaded]{Type: "questionsLoaded", Payload: questionsLoaded{
				FormTitle:      set.Title,
				TotalQuestions: len(set.Questions),
			}})
			h.sendSnapshot(conn, session)

		case "useDefaults":
			set, err := h.service.UseDefaults(session)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.send(conn, outboundMessage[questionsLoaded]{Type: "questionsLoaded", Payload: questionsLoaded{
				FormTitle:      set.Title,
				TotalQuestions: len(set.Questions),
			}})
			h.sendSnapshot(conn, session)

		case "scan":
			var payload scanPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid scan payload")
				continue
			}
			if _, err := h.service.Scan(session, payload.Code); err != nil {
				if errors.Is(err, domain.ErrNotScanning) {
					// Late decode after leaving the scanning phase; drop it.
					continue
				}
				h.sendError(conn, err.Error())
				continue
			}
			h.sendSnapshot(conn, session)

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid answer payload")
				continue
			}
			result, total, err := h.service.Answer(session, payload.OptionIndex)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.send(conn, outboundMessage[answerResult]{Type: "answerResult", Payload: answerResult{
				QuestionID: result.QuestionID,
				Correct:    result.Correct,
				Awarded:    result.Points,
				TotalScore: total,
			}})
			h.sendSnapshot(conn, session)

		case "nextQuestion":
			if err := h.service.NextQuestion(session); err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendSnapshot(conn, session)

		case "reset":
			h.service.Reset(r.Context(), session)
			h.sendSnapshot(conn, session)

		case "history":
			h.send(conn, outboundMessage[[]domain.SessionRecord]{
				Type:    "history",
				Payload: h.service.History(r.Context()),
			})

		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

// ServeHistory exposes the persisted sessions as JSON, most recent first.
// With ?email= it returns only that user's most recent session.
func (h *SessionHandler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		record, ok := h.service.LatestScore(r.Context(), email)
		if !ok {
			http.Error(w, "no sessions for email", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(record); err != nil {
			log.Printf("write latest score: %v", err)
		}
		return
	}

	records := h.service.History(r.Context())
	if records == nil {
		records = []domain.SessionRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		log.Printf("write history: %v", err)
	}
}

func (h *SessionHandler) sendSnapshot(conn *websocket.Conn, session *app.Session) {
	h.send(conn, outboundMessage[app.SessionSnapshot]{Type: "state", Payload: session.Snapshot()})
}

func (h *SessionHandler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
}

func (h *SessionHandler) send(conn *websocket.Conn, msg any) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws write error: %v", err)
	}
}
