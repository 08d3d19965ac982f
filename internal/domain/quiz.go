package domain

import (
	"context"
	"time"
)

// ValidationError represents a validation error
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// QuestionRecord is one validated multiple-choice question extracted from
// generator output. CorrectAnswer is always string-equal to exactly one
// element of Options; a record that cannot satisfy that is never constructed.
type QuestionRecord struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Context       string   `json:"context"`
}

// Validate checks the invariants a record must hold before it is shown to a
// student.
func (q *QuestionRecord) Validate() error {
	if q.Prompt == "" {
		return NewValidationError("prompt is required")
	}
	if len(q.Options) < 2 {
		return NewValidationError("at least two options are required")
	}
	resolved := false
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt == "" {
			return NewValidationError("options must be non-empty")
		}
		if seen[opt] {
			return NewValidationError("options must be distinct")
		}
		seen[opt] = true
		if opt == q.CorrectAnswer {
			resolved = true
		}
	}
	if !resolved {
		return NewValidationError("correct answer must match one of the options")
	}
	return nil
}

// Quiz is a generated, parsed quiz waiting to be answered. RawText keeps the
// generator's original output so a parse problem can be inspected and the
// quiz regenerated; it is never shown to the student.
type Quiz struct {
	ID          string           `json:"id"`
	StudentName string           `json:"student_name"`
	Categories  string           `json:"categories"`
	RawText     string           `json:"raw_text"`
	Records     []QuestionRecord `json:"records"`
	Dropped     int              `json:"dropped"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewQuiz creates a new Quiz instance
func NewQuiz(id, studentName, categories, rawText string, records []QuestionRecord, dropped int) *Quiz {
	return &Quiz{
		ID:          id,
		StudentName: studentName,
		Categories:  categories,
		RawText:     rawText,
		Records:     records,
		Dropped:     dropped,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.ID == "" {
		return NewValidationError("quiz ID is required")
	}
	if q.StudentName == "" {
		return NewValidationError("student name is required")
	}
	if len(q.Records) == 0 {
		return NewValidationError("at least one question is required")
	}
	for i := range q.Records {
		if err := q.Records[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QuizGenerator is the external text-generation collaborator. It returns the
// raw freeform quiz text for the given comma-separated categories.
type QuizGenerator interface {
	Generate(ctx context.Context, categories string) (string, error)
}

// QuizStore holds pending quizzes between generation and submission.
// Implementations return ErrQuizStoreMiss when the ID is unknown or expired.
type QuizStore interface {
	Save(ctx context.Context, quiz *Quiz) error
	Get(ctx context.Context, id string) (*Quiz, error)
	Delete(ctx context.Context, id string) error
}

// ResultStore is the append-only attempt log. Appends of complete attempts
// must not interleave; reads tolerate a missing or momentarily empty store.
type ResultStore interface {
	Append(attempt *QuizAttempt) error
	LoadAll() ([]*QuizAttempt, error)
	Clear() error
}
