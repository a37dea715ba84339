package domain

import "errors"

var (
	// ErrLoadFailed indicates the external question source was unreachable or returned a malformed payload.
	ErrLoadFailed = errors.New("question set load failed")
	// ErrQuestionNotFound indicates a scanned identifier matches no loaded question.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionSetNotFound indicates the requested question set does not exist in the backing store.
	ErrQuestionSetNotFound = errors.New("question set not found")
	// ErrInvalidUser is returned when a user submits an empty name or email.
	ErrInvalidUser = errors.New("name and email must not be empty")
	// ErrNoQuestions indicates a session tried to advance without a loaded question set.
	ErrNoQuestions = errors.New("no questions loaded")
	// ErrConflictingState is returned when an event arrives in a phase that cannot accept it.
	ErrConflictingState = errors.New("event not allowed in current state")
	// ErrNotScanning is returned for decode events that arrive after the scanning phase ended.
	ErrNotScanning = errors.New("session is not scanning")
	// ErrInvalidOption indicates a submitted answer index is outside the question's options.
	ErrInvalidOption = errors.New("option index out of range")
)
