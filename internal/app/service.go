package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/domain"
)

// QuestionSource loads question sets (forms service, Postgres, cache).
type QuestionSource interface {
	Load(ctx context.Context, ref string) (domain.QuestionSet, error)
}

// ResultCache persists completed sessions and serves the history views.
type ResultCache interface {
	Persist(ctx context.Context, record domain.SessionRecord) error
	ListAll(ctx context.Context) []domain.SessionRecord
	LatestScoreFor(ctx context.Context, email string) (domain.SessionRecord, bool)
}

// SessionService contains the quiz use cases shared by all live sessions.
type SessionService struct {
	source QuestionSource
	cache  ResultCache
	now    func() time.Time
}

func NewSessionService(source QuestionSource, cache ResultCache) *SessionService {
	return &SessionService{source: source, cache: cache, now: time.Now}
}

// NewSession starts a fresh session in the identifying phase.
func (s *SessionService) NewSession() *Session {
	return newSession(s.now)
}

// Identify submits the user's name and email and advances to question selection.
func (s *SessionService) Identify(sess *Session, user domain.User) error {
	return sess.identify(user)
}

// LoadExternal fetches a question set from the external source and installs
// it. On failure the session stays in question selection so the caller can
// fall back to UseDefaults.
func (s *SessionService) LoadExternal(ctx context.Context, sess *Session, ref string) (domain.QuestionSet, error) {
	generation, err := sess.beginLoad()
	if err != nil {
		return domain.QuestionSet{}, err
	}

	// The fetch runs outside the session lock; installQuestions rechecks
	// the generation so a reset during the fetch discards the result.
	set, err := s.source.Load(ctx, ref)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}
	if len(set.Questions) == 0 {
		return domain.QuestionSet{}, fmt.Errorf("%w: source returned no questions", domain.ErrLoadFailed)
	}
	if err := sess.installQuestions(set, generation); err != nil {
		return domain.QuestionSet{}, err
	}
	return set, nil
}

// UseDefaults installs the built-in question set and advances to scanning.
func (s *SessionService) UseDefaults(sess *Session) (domain.QuestionSet, error) {
	generation, err := sess.beginLoad()
	if err != nil {
		return domain.QuestionSet{}, err
	}
	set := domain.DefaultQuestionSet()
	if err := sess.installQuestions(set, generation); err != nil {
		return domain.QuestionSet{}, err
	}
	return set, nil
}

// Scan resolves a decoded or typed code to a question. A miss keeps the
// session in the scanning phase; a late decode after the phase ended is
// rejected with ErrNotScanning.
func (s *SessionService) Scan(sess *Session, raw string) (domain.Question, error) {
	return sess.scan(raw)
}

// Answer records the selected option, scores it, and shows the result.
func (s *SessionService) Answer(sess *Session, optionIndex int) (domain.AnswerResult, int, error) {
	return sess.answer(optionIndex)
}

// NextQuestion returns to scanning, keeping the accumulated results.
func (s *SessionService) NextQuestion(sess *Session) error {
	return sess.nextQuestion()
}

// Reset ends the session for a new user. Accumulated results are persisted
// best-effort: a cache failure is logged and never blocks the flow.
func (s *SessionService) Reset(ctx context.Context, sess *Session) {
	record, hasResults := sess.reset()
	if !hasResults || s.cache == nil {
		return
	}
	if err := s.cache.Persist(ctx, record); err != nil {
		log.Printf("persist session for %s: %v", record.User.Email, err)
	}
}

// History lists every persisted session, most recent first.
func (s *SessionService) History(ctx context.Context) []domain.SessionRecord {
	if s.cache == nil {
		return nil
	}
	return s.cache.ListAll(ctx)
}

// LatestScore returns the most recent persisted session for one email.
func (s *SessionService) LatestScore(ctx context.Context, email string) (domain.SessionRecord, bool) {
	if s.cache == nil {
		return domain.SessionRecord{}, false
	}
	return s.cache.LatestScoreFor(ctx, email)
}
