package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/app"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/cache"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/domain"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func TestWebSocketQuizFlow(t *testing.T) {
	service, _ := newTestService()
	handler := NewSessionHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot arrives in the identifying phase.
	_, payload := readNext(conn, t, "state")
	if payload["state"] != string(app.StateIdentifying) {
		t.Fatalf("expected identifying, got %v", payload["state"])
	}

	writeMsg(conn, t, "identify", map[string]any{"name": "Alice", "email": "alice@example.com"})
	_, payload = readNext(conn, t, "state")
	if payload["state"] != string(app.StateSelectingQuestions) {
		t.Fatalf("expected selectingQuestions, got %v", payload["state"])
	}

	writeMsg(conn, t, "useDefaults", nil)
	_, loaded := readNext(conn, t, "questionsLoaded")
	if loaded["totalQuestions"].(float64) != 19 {
		t.Fatalf("expected 19 default questions, got %v", loaded["totalQuestions"])
	}
	readNext(conn, t, "state")

	// Default question "2" is 2+2 worth 5 points; option 1 is correct.
	writeMsg(conn, t, "scan", map[string]any{"code": " 2 "})
	_, payload = readNext(conn, t, "state")
	if payload["state"] != string(app.StateAnswering) {
		t.Fatalf("expected answering, got %v", payload["state"])
	}

	writeMsg(conn, t, "answer", map[string]any{"optionIndex": 1})
	_, result := readNext(conn, t, "answerResult")
	if result["correct"] != true || result["awarded"].(float64) != 5 || result["totalScore"].(float64) != 5 {
		t.Fatalf("unexpected answer result: %v", result)
	}
	readNext(conn, t, "state")

	writeMsg(conn, t, "nextQuestion", nil)
	_, payload = readNext(conn, t, "state")
	if payload["state"] != string(app.StateScanning) {
		t.Fatalf("expected scanning after next, got %v", payload["state"])
	}
}

func TestWebSocketScanMissStaysScanning(t *testing.T) {
	service, _ := newTestService()
	handler := NewSessionHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readNext(conn, t, "state")
	writeMsg(conn, t, "identify", map[string]any{"name": "Alice", "email": "alice@example.com"})
	readNext(conn, t, "state")
	writeMsg(conn, t, "useDefaults", nil)
	readNext(conn, t, "questionsLoaded")
	readNext(conn, t, "state")

	writeMsg(conn, t, "scan", map[string]any{"code": "99"})
	typ, errPayload := readNext(conn, t, "error")
	if typ != "error" {
		t.Fatalf("expected error for unknown code, got %s", typ)
	}
	if errPayload["message"] == "" {
		t.Fatalf("expected error message")
	}

	// Still scanning: a known code works right after the miss.
	writeMsg(conn, t, "scan", map[string]any{"code": "1"})
	_, payload := readNext(conn, t, "state")
	if payload["state"] != string(app.StateAnswering) {
		t.Fatalf("expected answering after valid scan, got %v", payload["state"])
	}
}

func TestHistoryEndpoint(t *testing.T) {
	service, kv := newTestService()

	results := cache.New(kv)
	record := domain.SessionRecord{
		User:      domain.User{Name: "Alice", Email: "alice@example.com"},
		Results:   []domain.AnswerResult{{QuestionID: "2", Points: 5, Correct: true}},
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := results.Persist(context.Background(), record); err != nil {
		t.Fatalf("persist: %v", err)
	}

	handler := NewSessionHandler(service)
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body == "" || body == "[]\n" {
		t.Fatalf("expected history entries, got %q", body)
	}

	// Latest-score view for one user.
	req = httptest.NewRequest(http.MethodGet, "/history?email=alice@example.com", nil)
	rec = httptest.NewRecorder()
	handler.ServeHistory(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for known email, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/history?email=nobody@example.com", nil)
	rec = httptest.NewRecorder()
	handler.ServeHistory(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown email, got %d", rec.Code)
	}
}

func newTestService() (*app.SessionService, *memory.KVStore) {
	kv := memory.NewKVStore()
	source := memory.NewQuestionRepository(memory.NewStaticLoader(map[string]domain.QuestionSet{}), time.Minute)
	return app.NewSessionService(source, cache.New(kv)), kv
}

func writeMsg(conn *websocket.Conn, t *testing.T, msgType string, payload map[string]any) {
	t.Helper()
	msg := map[string]any{"type": msgType}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}
