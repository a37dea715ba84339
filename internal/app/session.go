package app

import (
	"strings"
	"sync"
	"time"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/domain"
)

// State names one phase of the quiz flow.
type State string

const (
	StateIdentifying        State = "identifying"
	StateSelectingQuestions State = "selectingQuestions"
	StateScanning           State = "scanning"
	StateAnswering          State = "answering"
	StateShowingResult      State = "showingResult"
)

// SessionSnapshot is the read-only view handed to the presentation layer.
type SessionSnapshot struct {
	State      State                 `json:"state"`
	User       domain.User           `json:"user"`
	Question   *domain.Question      `json:"question,omitempty"`
	Results    []domain.AnswerResult `json:"results"`
	TotalScore int                   `json:"totalScore"`
}

// Session tracks one user's progress through the quiz flow. All transitions
// run under the session mutex, so each event is processed to completion
// before the next one is accepted.
type Session struct {
	mu    sync.Mutex
	now   func() time.Time
	state State

	user      domain.User
	questions domain.QuestionSet
	current   *domain.Question
	results   []domain.AnswerResult
	total     int

	// generation is bumped on every reset; an external load that completes
	// against an older generation is discarded instead of being applied to
	// the newer session.
	generation uint64
}

func newSession(now func() time.Time) *Session {
	return &Session{now: now, state: StateIdentifying}
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(now func() time.Time) *Session {
	return newSession(now)
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the live session for rendering.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{
		State:      s.state,
		User:       s.user,
		Results:    append([]domain.AnswerResult(nil), s.results...),
		TotalScore: s.total,
	}
	if s.current != nil {
		q := *s.current
		snap.Question = &q
	}
	return snap
}

func (s *Session) identify(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdentifying {
		return domain.ErrConflictingState
	}
	name := strings.TrimSpace(user.Name)
	email := strings.TrimSpace(user.Email)
	if name == "" || email == "" {
		return domain.ErrInvalidUser
	}
	s.user = domain.User{Name: name, Email: email}
	s.state = StateSelectingQuestions
	return nil
}

// beginLoad records the generation an in-flight external fetch belongs to.
func (s *Session) beginLoad() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSelectingQuestions {
		return 0, domain.ErrConflictingState
	}
	return s.generation, nil
}

func (s *Session) installQuestions(set domain.QuestionSet, generation uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation || s.state != StateSelectingQuestions {
		// The session moved on (reset or already loaded) while the fetch
		// was in flight; the stale result must not overwrite it.
		return domain.ErrConflictingState
	}
	if len(set.Questions) == 0 {
		return domain.ErrNoQuestions
	}
	s.questions = set
	s.state = StateScanning
	return nil
}

func (s *Session) scan(raw string) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateScanning {
		return domain.Question{}, domain.ErrNotScanning
	}
	id := strings.TrimSpace(raw)
	question, ok := s.questions.FindByID(id)
	if !ok {
		// Lookup miss keeps the session scanning.
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	s.current = &question
	s.state = StateAnswering
	return question, nil
}

func (s *Session) answer(optionIndex int) (domain.AnswerResult, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAnswering || s.current == nil {
		return domain.AnswerResult{}, 0, domain.ErrConflictingState
	}
	if optionIndex < 0 || optionIndex >= len(s.current.Options) {
		return domain.AnswerResult{}, 0, domain.ErrInvalidOption
	}

	correct := optionIndex == s.current.CorrectAnswer
	points := 0
	if correct {
		points = s.current.Points
	}
	result := domain.AnswerResult{
		QuestionID:    s.current.ID,
		Question:      s.current.Prompt,
		UserAnswer:    optionIndex,
		CorrectAnswer: s.current.CorrectAnswer,
		Points:        points,
		Correct:       correct,
	}
	s.results = append(s.results, result)
	s.total += points
	s.state = StateShowingResult
	return result, s.total, nil
}

func (s *Session) nextQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateShowingResult {
		return domain.ErrConflictingState
	}
	s.current = nil
	s.state = StateScanning
	return nil
}

// reset clears all in-memory session state and returns the record to
// persist, if any answers were accumulated.
func (s *Session) reset() (domain.SessionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := domain.SessionRecord{
		User:      s.user,
		Results:   append([]domain.AnswerResult(nil), s.results...),
		Timestamp: s.now(),
	}
	record.TotalScore = record.Score()
	hasResults := len(record.Results) > 0

	s.user = domain.User{}
	s.questions = domain.QuestionSet{}
	s.current = nil
	s.results = nil
	s.total = 0
	s.state = StateIdentifying
	s.generation++

	return record, hasResults
}
