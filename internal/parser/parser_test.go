package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phishingBlock = `What is phishing?
A. A fish
B. A fraudulent attempt to obtain sensitive data
C. A virus
D. A firewall
Correct Answer: B
Context: Phishing uses deceptive messages.`

func TestParse_WellFormedBlock(t *testing.T) {
	result := Parse(phishingBlock)

	require.Len(t, result.Records, 1)
	assert.Equal(t, 0, result.Dropped)
	assert.Equal(t, 0, result.Fallbacks)

	rec := result.Records[0]
	assert.Equal(t, "What is phishing?", rec.Prompt)
	assert.Equal(t, []string{
		"A. A fish",
		"B. A fraudulent attempt to obtain sensitive data",
		"C. A virus",
		"D. A firewall",
	}, rec.Options)
	assert.Equal(t, "B. A fraudulent attempt to obtain sensitive data", rec.CorrectAnswer)
	assert.Equal(t, "Phishing uses deceptive messages.", rec.Context)
}

func TestParse_MultipleBlocksPreserveOrder(t *testing.T) {
	raw := `First question?
A. one
B. two
Answer: A
Context: first.

Second question?
A. alpha
B. beta
Answer: B
Context: second.`

	result := Parse(raw)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "First question?", result.Records[0].Prompt)
	assert.Equal(t, "A. one", result.Records[0].CorrectAnswer)
	assert.Equal(t, "Second question?", result.Records[1].Prompt)
	assert.Equal(t, "B. beta", result.Records[1].CorrectAnswer)
}

func TestParse_FullTextAnswerResolvedByContainment(t *testing.T) {
	raw := `What is phishing?
A. A fish
B. A fraudulent attempt to obtain sensitive data
C. A virus
D. A firewall
Correct Answer: A fraudulent attempt to obtain sensitive data
Context: Deceptive messages.`

	result := Parse(raw)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "B. A fraudulent attempt to obtain sensitive data", result.Records[0].CorrectAnswer)
}

func TestParse_LetterPlusTextAnswer(t *testing.T) {
	raw := `What is phishing?
A. A fish
B. A fraudulent attempt to obtain sensitive data
C. A virus
D. A firewall
Correct Answer: B. A fraudulent attempt to obtain sensitive data
Context: Deceptive messages.`

	result := Parse(raw)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "B. A fraudulent attempt to obtain sensitive data", result.Records[0].CorrectAnswer)
}

func TestParse_NumericLabels(t *testing.T) {
	raw := `Pick one.
1. first
2) second
3. third
4. fourth
Answer: 2
Context: numbers work too.`

	result := Parse(raw)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "2) second", result.Records[0].CorrectAnswer)
}

func TestParse_UnresolvableAnswerDropped(t *testing.T) {
	// Three extractable options, answer names a missing fourth.
	raw := `Truncated question?
A. first
B. second
C. third
Correct Answer: D
Context: the fourth option got cut off.`

	result := Parse(raw)

	assert.Empty(t, result.Records)
	assert.Equal(t, 1, result.Dropped)
}

func TestParse_MissingAnswerLineDropped(t *testing.T) {
	raw := `Orphan question?
A. first
B. second`

	result := Parse(raw)

	assert.Empty(t, result.Records)
	assert.Equal(t, 1, result.Dropped)
}

func TestParse_PartialParseKeepsValidBlocks(t *testing.T) {
	raw := phishingBlock + `

Broken block without options or answer

Second valid?
A. yes
B. no
Answer: A
Context: fine.`

	result := Parse(raw)

	require.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.Dropped)
}

func TestParse_PositionalFallback(t *testing.T) {
	raw := `Unlabeled options?
first choice
second choice
third choice
fourth choice
Correct Answer: second choice
Context: no labels at all.`

	result := Parse(raw)

	require.Len(t, result.Records, 1)
	assert.Equal(t, 1, result.Fallbacks)
	assert.Equal(t, "second choice", result.Records[0].CorrectAnswer)
	assert.Len(t, result.Records[0].Options, 4)
}

func TestParse_ContextOptional(t *testing.T) {
	raw := `No context here?
A. yes
B. no
Answer: A`

	result := Parse(raw)

	require.Len(t, result.Records, 1)
	assert.Empty(t, result.Records[0].Context)
}

func TestParse_ExplanationAlias(t *testing.T) {
	raw := `Aliased context?
A. yes
B. no
Answer: B
Explanation: uses the alias.`

	result := Parse(raw)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "uses the alias.", result.Records[0].Context)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n\n"} {
		result := Parse(raw)
		assert.Empty(t, result.Records)
		assert.Equal(t, 0, result.Dropped)
	}
}

func TestParse_Deterministic(t *testing.T) {
	first := Parse(phishingBlock)
	second := Parse(phishingBlock)
	assert.Equal(t, first, second)
}

func TestParse_TenQuestionQuiz(t *testing.T) {
	// Shape the generator is prompted for: 10 blocks, 4 options each.
	var blocks []string
	for _, topic := range []string{"phishing", "passwords", "malware", "wifi", "updates",
		"backups", "mfa", "social engineering", "usb drives", "reporting"} {
		blocks = append(blocks, "What about "+topic+"?\nA. option one\nB. option two\nC. option three\nD. option four\nCorrect Answer: C\nContext: about "+topic+".")
	}

	result := Parse(strings.Join(blocks, "\n\n"))

	require.Len(t, result.Records, 10)
	assert.Equal(t, 0, result.Dropped)
	for _, rec := range result.Records {
		assert.Equal(t, "C. option three", rec.CorrectAnswer)
		assert.NoError(t, rec.Validate())
	}
}
