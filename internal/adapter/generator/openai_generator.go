package generator

import (
	"context"
	"fmt"
	"strings"

	"secquiz/internal/config"
	"secquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const systemPrompt = "You are a cybersecurity professional and instructor with 25+ years experience."

const userPromptTemplate = `Create a cybersecurity awareness training assessment test.
Provide EXACTLY 10 questions.
Each question must include:
- 4 multiple-choice options labeled A-D (or 1-4)
- Correct Answer (letter or letter + option text)
- Short contextual explanation or 'Context:'
Respond ONLY with the quiz text (no additional commentary).
Base the questions on the following categories:
%s`

// openAIGenerator implements domain.QuizGenerator on top of an OpenAI chat
// model via langchaingo.
type openAIGenerator struct {
	llm    llms.Model
	cfg    config.LLMConfig
	logger *zap.Logger
}

// NewOpenAIGenerator creates the production generator. An empty API key fails
// fast with a not-configured error; the caller decides whether to run with
// generation disabled.
func NewOpenAIGenerator(apiKey string, llmCfg config.LLMConfig, logger *zap.Logger) (domain.QuizGenerator, error) {
	if apiKey == "" {
		return nil, domain.NewGeneratorNotConfiguredError()
	}
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(llmCfg.ModelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return NewGeneratorWithClient(client, llmCfg, logger), nil
}

// NewGeneratorWithClient wires an already-constructed model, which is what
// tests use.
func NewGeneratorWithClient(llm llms.Model, llmCfg config.LLMConfig, logger *zap.Logger) domain.QuizGenerator {
	return &openAIGenerator{llm: llm, cfg: llmCfg, logger: logger}
}

// Generate requests quiz text for the given categories. No retries: a failed
// call surfaces as an LLM service error and the user re-triggers manually.
func (g *openAIGenerator) Generate(ctx context.Context, categories string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(userPromptTemplate, categories)),
	}

	g.logger.Info("Requesting quiz generation",
		zap.String("model", g.cfg.ModelName),
		zap.String("categories", categories))

	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(g.cfg.MaxTokens),
		llms.WithTemperature(g.cfg.Temperature),
	)
	if err != nil {
		g.logger.Error("LLM call failed", zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewLLMServiceError(fmt.Errorf("LLM returned no choices"))
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	g.logger.Debug("Received generated quiz text", zap.Int("length", len(text)))
	return text, nil
}

var _ domain.QuizGenerator = (*openAIGenerator)(nil)
