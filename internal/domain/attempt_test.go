package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phishingRecord() QuestionRecord {
	return QuestionRecord{
		Prompt: "What is phishing?",
		Options: []string{
			"A. A fish",
			"B. A fraudulent attempt to obtain sensitive data",
			"C. A virus",
			"D. A firewall",
		},
		CorrectAnswer: "B. A fraudulent attempt to obtain sensitive data",
		Context:       "Phishing uses deceptive messages.",
	}
}

func TestNewQuizAttempt_ExactMatchScores(t *testing.T) {
	records := []QuestionRecord{phishingRecord()}
	now := time.Now()

	attempt := NewQuizAttempt("a1", "alice", records,
		[]string{"B. A fraudulent attempt to obtain sensitive data"}, now)

	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 1, attempt.Total)
	assert.Equal(t, 100.0, attempt.Percentage)
	assert.True(t, attempt.Passed)
	require.Len(t, attempt.Details, 1)
	assert.True(t, attempt.Details[0].IsCorrect)
}

func TestNewQuizAttempt_WrongOptionScoresZero(t *testing.T) {
	records := []QuestionRecord{phishingRecord()}

	for _, wrong := range []string{"A. A fish", "C. A virus", "D. A firewall"} {
		attempt := NewQuizAttempt("a1", "alice", records, []string{wrong}, time.Now())
		assert.Equal(t, 0, attempt.Score, "answer %q should not score", wrong)
		assert.Equal(t, 0.0, attempt.Percentage)
		assert.False(t, attempt.Passed)
	}
}

func TestNewQuizAttempt_UnansweredCountsAsIncorrect(t *testing.T) {
	records := []QuestionRecord{phishingRecord(), phishingRecord()}

	attempt := NewQuizAttempt("a1", "alice", records,
		[]string{"", "B. A fraudulent attempt to obtain sensitive data"}, time.Now())

	// The denominator keeps the unanswered question.
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 2, attempt.Total)
	assert.Equal(t, 50.0, attempt.Percentage)
	assert.True(t, attempt.Passed)
	assert.False(t, attempt.Details[0].IsCorrect)
}

func TestNewQuizAttempt_TrimsWhitespaceButKeepsCase(t *testing.T) {
	records := []QuestionRecord{phishingRecord()}

	trimmed := NewQuizAttempt("a1", "alice", records,
		[]string{"  B. A fraudulent attempt to obtain sensitive data  "}, time.Now())
	assert.Equal(t, 1, trimmed.Score)

	lowered := NewQuizAttempt("a1", "alice", records,
		[]string{"b. a fraudulent attempt to obtain sensitive data"}, time.Now())
	assert.Equal(t, 0, lowered.Score)
}

func TestNewQuizAttempt_Idempotent(t *testing.T) {
	records := []QuestionRecord{phishingRecord(), phishingRecord()}
	answers := []string{"B. A fraudulent attempt to obtain sensitive data", "A. A fish"}
	now := time.Now()

	first := NewQuizAttempt("a1", "alice", records, answers, now)
	second := NewQuizAttempt("a1", "alice", records, answers, now)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first, second)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		score int
		total int
		want  float64
	}{
		{"zero of zero is zero, not an error", 0, 0, 0},
		{"boundary half", 5, 10, 50.0},
		{"all correct", 10, 10, 100.0},
		{"rounds to two decimals", 1, 3, 33.33},
		{"two thirds", 2, 3, 66.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.score, tt.total))
		})
	}
}

func TestPassThresholdBoundary(t *testing.T) {
	records := make([]QuestionRecord, 10)
	answers := make([]string, 10)
	for i := range records {
		records[i] = phishingRecord()
	}
	// exactly 5 of 10 correct
	for i := 0; i < 5; i++ {
		answers[i] = "B. A fraudulent attempt to obtain sensitive data"
	}

	attempt := NewQuizAttempt("a1", "alice", records, answers, time.Now())

	assert.Equal(t, 50.0, attempt.Percentage)
	assert.True(t, attempt.Passed, "exactly 50.0 is a pass")
}

func TestNoQuestions(t *testing.T) {
	attempt := NewQuizAttempt("a1", "alice", nil, nil, time.Now())
	assert.True(t, attempt.NoQuestions())
	assert.Equal(t, 0.0, attempt.Percentage)
	assert.False(t, attempt.Passed)
}
