package quizstore

import (
	"context"
	"testing"
	"time"

	"secquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz(id string) *domain.Quiz {
	return domain.NewQuiz(id, "alice", "phishing", "raw", []domain.QuestionRecord{
		{
			Prompt:        "What is phishing?",
			Options:       []string{"A. A fish", "B. Fraud"},
			CorrectAnswer: "B. Fraud",
		},
	}, 0)
}

func TestMemoryQuizStore_SaveAndGet(t *testing.T) {
	store := NewMemoryQuizStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleQuiz("q1")))

	got, err := store.Get(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.StudentName)
	assert.Len(t, got.Records, 1)
}

func TestMemoryQuizStore_MissingID(t *testing.T) {
	store := NewMemoryQuizStore(time.Minute)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrQuizStoreMiss)
}

func TestMemoryQuizStore_Delete(t *testing.T) {
	store := NewMemoryQuizStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleQuiz("q1")))
	require.NoError(t, store.Delete(ctx, "q1"))

	_, err := store.Get(ctx, "q1")
	assert.ErrorIs(t, err, domain.ErrQuizStoreMiss)

	// deleting again is fine
	assert.NoError(t, store.Delete(ctx, "q1"))
}

func TestMemoryQuizStore_TTLExpiry(t *testing.T) {
	store := NewMemoryQuizStore(time.Minute)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, sampleQuiz("q1")))

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err := store.Get(ctx, "q1")
	assert.ErrorIs(t, err, domain.ErrQuizStoreMiss)
}
