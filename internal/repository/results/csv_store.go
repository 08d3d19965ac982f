// Package results persists scored quiz attempts to an append-only CSV file.
// The file is the system of record for the teacher dashboard: one row per
// attempt, never updated, removed only by an explicit clear. Handles are
// opened per operation and closed immediately; nothing holds the file across
// user interactions.
package results

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"secquiz/internal/domain"
	"secquiz/internal/logger"

	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02 15:04:05"

var header = []string{"timestamp", "student_name", "score", "total", "percentage", "details"}

// CSVStore implements domain.ResultStore on a flat CSV file.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Append writes one complete attempt row. The row (plus the header when the
// file is new) is assembled in memory and written with a single Write against
// a file opened O_APPEND, so concurrent appends from independent attempts do
// not interleave.
func (s *CSVStore) Append(attempt *domain.QuizAttempt) error {
	details, err := json.Marshal(attempt.Details)
	if err != nil {
		return fmt.Errorf("failed to serialize attempt details: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results store: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat results store: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	row := []string{
		attempt.Timestamp.Format(timestampLayout),
		attempt.StudentName,
		strconv.Itoa(attempt.Score),
		strconv.Itoa(attempt.Total),
		fmt.Sprintf("%.2f", attempt.Percentage),
		string(details),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append attempt: %w", err)
	}
	return nil
}

// LoadAll reads every attempt in file order. A missing file is an empty
// store, not an error; malformed rows are skipped with a warning so one bad
// line never takes the dashboard down.
func (s *CSVStore) LoadAll() ([]*domain.QuizAttempt, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read results store: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse results store: %w", err)
	}

	var attempts []*domain.QuizAttempt
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		attempt, err := parseRow(row)
		if err != nil {
			logger.Get().Warn("Skipping malformed results row",
				zap.Int("line", i+1), zap.Error(err))
			continue
		}
		attempts = append(attempts, attempt)
	}
	return attempts, nil
}

// Clear removes the store entirely. Clearing an already-empty store is a
// no-op.
func (s *CSVStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear results store: %w", err)
	}
	return nil
}

func parseRow(row []string) (*domain.QuizAttempt, error) {
	if len(row) < 6 {
		return nil, fmt.Errorf("expected 6 columns, got %d", len(row))
	}
	ts, err := time.ParseInLocation(timestampLayout, row[0], time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad timestamp %q: %w", row[0], err)
	}
	score, err := strconv.Atoi(row[2])
	if err != nil {
		return nil, fmt.Errorf("bad score %q: %w", row[2], err)
	}
	total, err := strconv.Atoi(row[3])
	if err != nil {
		return nil, fmt.Errorf("bad total %q: %w", row[3], err)
	}
	percentage, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return nil, fmt.Errorf("bad percentage %q: %w", row[4], err)
	}
	var details []domain.AnswerDetail
	if row[5] != "" {
		if err := json.Unmarshal([]byte(row[5]), &details); err != nil {
			return nil, fmt.Errorf("bad details payload: %w", err)
		}
	}
	return &domain.QuizAttempt{
		StudentName: row[1],
		Timestamp:   ts,
		Details:     details,
		Score:       score,
		Total:       total,
		Percentage:  percentage,
		Passed:      percentage >= domain.PassThreshold,
	}, nil
}

var _ domain.ResultStore = (*CSVStore)(nil)
