package service

import (
	"context"
	"strings"
	"time"

	"secquiz/internal/domain"
	"secquiz/internal/dto"
	"secquiz/internal/logger"
	"secquiz/internal/parser"
	"secquiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService drives the student-facing flow: generate, re-fetch, answer,
// discard.
type QuizService interface {
	Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	Get(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	Submit(ctx context.Context, quizID string, req *dto.SubmitAnswersRequest) (*dto.AttemptResponse, error)
	Discard(ctx context.Context, quizID string) error
}

type quizService struct {
	generator   domain.QuizGenerator // nil when generation is not configured
	quizStore   domain.QuizStore
	resultStore domain.ResultStore
	generating  singleflight.Group
}

// NewQuizService wires the student flow. generator may be nil, in which case
// Generate fails fast with a not-configured error while submission of
// already-generated quizzes keeps working.
func NewQuizService(generator domain.QuizGenerator, quizStore domain.QuizStore, resultStore domain.ResultStore) QuizService {
	return &quizService{
		generator:   generator,
		quizStore:   quizStore,
		resultStore: resultStore,
	}
}

func (s *quizService) Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	studentName := strings.TrimSpace(req.StudentName)
	categories := strings.TrimSpace(req.Categories)
	if studentName == "" {
		return nil, domain.NewInvalidInputError("Please enter your name before generating the quiz")
	}
	if categories == "" {
		return nil, domain.NewInvalidInputError("Please enter categories/topics")
	}
	if s.generator == nil {
		return nil, domain.NewGeneratorNotConfiguredError()
	}

	// A double-clicked generate button should not trigger two LLM calls;
	// concurrent identical requests share one generation.
	key := studentName + "|" + categories
	result, err, shared := s.generating.Do(key, func() (interface{}, error) {
		return s.generateQuiz(ctx, studentName, categories)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Generation request coalesced", zap.String("student", studentName))
	}
	return toQuizResponse(result.(*domain.Quiz)), nil
}

func (s *quizService) generateQuiz(ctx context.Context, studentName, categories string) (*domain.Quiz, error) {
	raw, err := s.generator.Generate(ctx, categories)
	if err != nil {
		return nil, err
	}

	parsed := parser.Parse(raw)
	if len(parsed.Records) == 0 {
		// The raw text travels with the error so it is never silently
		// discarded; the student can inspect it and regenerate.
		logger.Get().Warn("Generated text produced no valid questions",
			zap.String("student", studentName),
			zap.Int("dropped", parsed.Dropped))
		return nil, domain.NewUnparseableQuizError(raw, parsed.Dropped)
	}
	if parsed.Dropped > 0 {
		logger.Get().Warn("Some question blocks were dropped",
			zap.String("student", studentName),
			zap.Int("dropped", parsed.Dropped),
			zap.Int("kept", len(parsed.Records)))
	}
	if parsed.Fallbacks > 0 {
		logger.Get().Warn("Positional option fallback used",
			zap.Int("blocks", parsed.Fallbacks))
	}

	quiz := domain.NewQuiz(util.NewULID(), studentName, categories, raw, parsed.Records, parsed.Dropped)
	if err := quiz.Validate(); err != nil {
		return nil, domain.NewInternalError("generated quiz failed validation", err)
	}
	if err := s.quizStore.Save(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to store generated quiz", err)
	}

	logger.Get().Info("Quiz generated",
		zap.String("quiz_id", quiz.ID),
		zap.String("student", studentName),
		zap.Int("questions", len(quiz.Records)))
	return quiz, nil
}

func (s *quizService) Get(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return toQuizResponse(quiz), nil
}

func (s *quizService) Submit(ctx context.Context, quizID string, req *dto.SubmitAnswersRequest) (*dto.AttemptResponse, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(req.Answers) != len(quiz.Records) {
		return nil, domain.NewInvalidInputError("answers must cover every question; use an empty string for unanswered questions")
	}

	attempt := domain.NewQuizAttempt(util.NewULID(), quiz.StudentName, quiz.Records, req.Answers, time.Now())
	if err := s.resultStore.Append(attempt); err != nil {
		return nil, domain.NewInternalError("failed to persist attempt", err)
	}

	// The quiz is single-use: clear it so the next student generates fresh.
	if err := s.quizStore.Delete(ctx, quizID); err != nil {
		logger.Get().Warn("Failed to delete submitted quiz",
			zap.String("quiz_id", quizID), zap.Error(err))
	}

	logger.Get().Info("Attempt scored",
		zap.String("attempt_id", attempt.ID),
		zap.String("student", attempt.StudentName),
		zap.Int("score", attempt.Score),
		zap.Int("total", attempt.Total),
		zap.Float64("percentage", attempt.Percentage))
	return toAttemptResponse(attempt), nil
}

func (s *quizService) Discard(ctx context.Context, quizID string) error {
	if strings.TrimSpace(quizID) == "" {
		return domain.NewInvalidInputError("quiz ID is required")
	}
	if err := s.quizStore.Delete(ctx, quizID); err != nil {
		return domain.NewInternalError("failed to discard quiz", err)
	}
	return nil
}

func (s *quizService) loadQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	if strings.TrimSpace(quizID) == "" {
		return nil, domain.NewInvalidInputError("quiz ID is required")
	}
	quiz, err := s.quizStore.Get(ctx, quizID)
	if err != nil {
		if err == domain.ErrQuizStoreMiss {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	return quiz, nil
}

func toQuizResponse(quiz *domain.Quiz) *dto.QuizResponse {
	questions := make([]dto.QuestionView, 0, len(quiz.Records))
	for i, rec := range quiz.Records {
		questions = append(questions, dto.QuestionView{
			Index:   i + 1,
			Prompt:  rec.Prompt,
			Options: rec.Options,
		})
	}
	return &dto.QuizResponse{
		QuizID:      quiz.ID,
		StudentName: quiz.StudentName,
		Total:       len(quiz.Records),
		Dropped:     quiz.Dropped,
		Questions:   questions,
	}
}

func toAttemptResponse(attempt *domain.QuizAttempt) *dto.AttemptResponse {
	details := make([]dto.AnswerDetailResponse, 0, len(attempt.Details))
	for _, d := range attempt.Details {
		details = append(details, dto.AnswerDetailResponse{
			Index:     d.Index,
			Question:  d.Question,
			Selected:  d.Selected,
			Correct:   d.Correct,
			Context:   d.Context,
			IsCorrect: d.IsCorrect,
		})
	}
	return &dto.AttemptResponse{
		AttemptID:   attempt.ID,
		StudentName: attempt.StudentName,
		Score:       attempt.Score,
		Total:       attempt.Total,
		Percentage:  attempt.Percentage,
		Passed:      attempt.Passed,
		Details:     details,
	}
}
