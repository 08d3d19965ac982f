package domain

import (
	"math"
	"strings"
	"time"
)

// PassThreshold is the minimum percentage counted as a pass, boundary
// inclusive: exactly 50.0 passes.
const PassThreshold = 50.0

// AnswerDetail is the per-question breakdown of one attempt.
type AnswerDetail struct {
	Index     int    `json:"q_index"`
	Question  string `json:"question"`
	Selected  string `json:"selected"`
	Correct   string `json:"correct"`
	Context   string `json:"context,omitempty"`
	IsCorrect bool   `json:"is_correct"`
}

// QuizAttempt is one student's scored run through a quiz. It is immutable
// once created: appended to the results store, never updated, removed only by
// a bulk clear.
type QuizAttempt struct {
	ID          string         `json:"id"`
	StudentName string         `json:"student_name"`
	Timestamp   time.Time      `json:"timestamp"`
	Details     []AnswerDetail `json:"details"`
	Score       int            `json:"score"`
	Total       int            `json:"total"`
	Percentage  float64        `json:"percentage"`
	Passed      bool           `json:"passed"`
}

// NewQuizAttempt scores submitted answers against the quiz's records.
// answers must be index-aligned with records; an empty string means
// unanswered and counts as incorrect, never as skipped from the denominator.
// Comparison is exact string equality after trimming surrounding whitespace.
// Scoring is deterministic: the same records and answers always produce the
// same score.
func NewQuizAttempt(id, studentName string, records []QuestionRecord, answers []string, now time.Time) *QuizAttempt {
	total := len(records)
	score := 0
	details := make([]AnswerDetail, 0, total)

	for i, rec := range records {
		selected := ""
		if i < len(answers) {
			selected = answers[i]
		}
		correct := strings.TrimSpace(selected) != "" &&
			strings.TrimSpace(selected) == strings.TrimSpace(rec.CorrectAnswer)
		if correct {
			score++
		}
		details = append(details, AnswerDetail{
			Index:     i + 1,
			Question:  rec.Prompt,
			Selected:  selected,
			Correct:   rec.CorrectAnswer,
			Context:   rec.Context,
			IsCorrect: correct,
		})
	}

	return &QuizAttempt{
		ID:          id,
		StudentName: studentName,
		Timestamp:   now,
		Details:     details,
		Score:       score,
		Total:       total,
		Percentage:  Percentage(score, total),
		Passed:      Percentage(score, total) >= PassThreshold,
	}
}

// Percentage returns 100*score/total rounded to two decimals. A zero total
// yields 0, never a division error.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(100*float64(score)/float64(total)*100) / 100
}

// NoQuestions reports the degenerate attempt over an empty quiz: scored 0%
// and failed rather than rejected.
func (a *QuizAttempt) NoQuestions() bool {
	return a.Total == 0
}
