package domain

import "time"

// User identifies who is taking the quiz. Email doubles as the cache key
// for persisted scores.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Question models an MCQ question selected by scanning its ID.
// CorrectAnswer is a zero-based index into Options.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Points        int      `json:"points"`
}

// AnswerResult freezes the outcome of answering one question. Prompt and
// CorrectAnswer are snapshots taken at answer time; they are never
// recomputed against the store afterwards.
type AnswerResult struct {
	QuestionID    string `json:"questionId"`
	Question      string `json:"question"`
	UserAnswer    int    `json:"userAnswer"`
	CorrectAnswer int    `json:"correctAnswer"`
	Points        int    `json:"points"`
	Correct       bool   `json:"isCorrect"`
}

// SessionRecord is the persisted form of a completed session.
type SessionRecord struct {
	User       User           `json:"user"`
	Results    []AnswerResult `json:"results"`
	TotalScore int            `json:"totalScore"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Score recomputes the total from the individual results. Persisted
// TotalScore must always equal this sum.
func (r SessionRecord) Score() int {
	total := 0
	for _, res := range r.Results {
		total += res.Points
	}
	return total
}

// QuestionSet is the active set of questions for one session, loaded once
// from the built-in defaults or an external source.
type QuestionSet struct {
	ID        string     `json:"id"`
	Title     string     `json:"formTitle"`
	Questions []Question `json:"questions"`
}

// FindByID returns the question with the given ID. Matching is exact:
// no trimming, no case folding.
func (s QuestionSet) FindByID(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
