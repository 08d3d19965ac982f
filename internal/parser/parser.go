// Package parser turns the freeform text returned by the quiz generator into
// validated question records. The input is untrusted prose from an LLM, so
// every block is fully validated and anything that cannot be resolved into a
// well-formed question is dropped and counted rather than guessed at.
package parser

import (
	"regexp"
	"strings"

	"secquiz/internal/domain"
	"secquiz/internal/logger"

	"go.uber.org/zap"
)

var (
	blockSeparator = regexp.MustCompile(`\n\s*\n`)
	optionLine     = regexp.MustCompile(`(?i)^[A-D1-4][.)]\s+`)
	answerLine     = regexp.MustCompile(`(?i)(Correct Answer|Answer)\s*[:\-]?\s*(.*)`)
	contextLine    = regexp.MustCompile(`(?i)(Context|Explanation)\s*[:\-]?\s*(.*)`)

	// A raw correct-answer value is a label reference only when it is a bare
	// option letter/digit, or that character followed by punctuation
	// ("B", "B.", "B) some text"). "A fraudulent attempt..." begins with a
	// label character but is full option text and must take the containment
	// path instead.
	labelToken = regexp.MustCompile(`(?i)^([A-D1-4])\s*(?:[.):\-].*)?$`)

	// A bare label carries no option text of its own, so containment has
	// nothing to work with.
	bareLabel = regexp.MustCompile(`(?i)^[A-D1-4]\s*[.):\-]?\s*$`)
)

// Result is what one parse of generator output yields. Dropped counts blocks
// that looked like questions but failed validation; Fallbacks counts blocks
// whose options were taken positionally because no labeled option line was
// found (a degraded mode worth watching).
type Result struct {
	Records   []domain.QuestionRecord
	Dropped   int
	Fallbacks int
}

// Parse extracts question records from raw generator text. It is
// deterministic: identical input always produces an identical result. The
// returned records all satisfy domain.QuestionRecord.Validate.
func Parse(raw string) Result {
	var result Result
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return result
	}

	for _, block := range blockSeparator.Split(trimmed, -1) {
		lines := nonEmptyLines(block)
		if len(lines) == 0 {
			continue
		}
		record, ok := parseBlock(lines, &result)
		if !ok {
			result.Dropped++
			continue
		}
		result.Records = append(result.Records, record)
	}
	return result
}

func parseBlock(lines []string, result *Result) (domain.QuestionRecord, bool) {
	prompt := lines[0]

	options := extractOptions(lines)
	if len(options) == 0 && len(lines) >= 5 {
		// No labeled options at all: assume the four lines after the prompt
		// are the choices. Degraded, so it is counted separately.
		options = append(options, lines[1:5]...)
		result.Fallbacks++
		logger.Get().Warn("No labeled options found, using positional fallback",
			zap.String("prompt", prompt))
	}

	rawAnswer := firstSubmatch(lines, answerLine)
	context := firstSubmatch(lines, contextLine)

	correct, resolved := resolveCorrectAnswer(rawAnswer, options)

	record := domain.QuestionRecord{
		Prompt:        prompt,
		Options:       options,
		CorrectAnswer: correct,
		Context:       context,
	}
	if !resolved || record.Validate() != nil {
		logger.Get().Warn("Dropping unparseable question block",
			zap.String("prompt", prompt),
			zap.Int("options", len(options)),
			zap.String("raw_answer", rawAnswer))
		return domain.QuestionRecord{}, false
	}
	return record, true
}

func nonEmptyLines(block string) []string {
	var lines []string
	for _, ln := range strings.Split(block, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

func extractOptions(lines []string) []string {
	var options []string
	for _, ln := range lines[1:] {
		if optionLine.MatchString(ln) {
			options = append(options, ln)
		}
	}
	return options
}

// firstSubmatch returns the trimmed second capture group of the first line in
// the block matching re, searching every line, not just those after the
// options.
func firstSubmatch(lines []string, re *regexp.Regexp) string {
	for _, ln := range lines {
		if m := re.FindStringSubmatch(ln); m != nil {
			return strings.TrimSpace(m[2])
		}
	}
	return ""
}

// resolveCorrectAnswer maps the raw correct-answer text onto one of the
// extracted options. Label references ("B", "B. full text") pick the option
// starting with that label; otherwise case-insensitive substring containment
// in either direction decides. An unresolvable answer leaves the record
// invalid so it gets dropped, never silently scored.
func resolveCorrectAnswer(rawAnswer string, options []string) (string, bool) {
	rawAnswer = strings.TrimSpace(rawAnswer)
	if rawAnswer == "" || len(options) == 0 {
		return "", false
	}

	if m := labelToken.FindStringSubmatch(rawAnswer); m != nil {
		label := strings.ToUpper(m[1])
		for _, opt := range options {
			if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(opt)), label) {
				return opt, true
			}
		}
		if bareLabel.MatchString(rawAnswer) {
			return "", false
		}
	}

	lowered := strings.ToLower(rawAnswer)
	for _, opt := range options {
		optLowered := strings.ToLower(strings.TrimSpace(opt))
		if strings.Contains(optLowered, lowered) || strings.Contains(lowered, optLowered) {
			return opt, true
		}
	}
	return "", false
}
