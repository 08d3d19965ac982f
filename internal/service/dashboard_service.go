package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"secquiz/internal/domain"
	"secquiz/internal/dto"
	"secquiz/internal/logger"

	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02 15:04:05"

// DashboardService is the teacher-facing read side over the results store.
// Every call reads the store in full; the store may grow between calls and
// may be empty or missing, both of which read as zero attempts.
type DashboardService interface {
	Summary() (*dto.SummaryResponse, error)
	TopAttempts(limit int) (*dto.AttemptsResponse, error)
	AllAttempts() (*dto.AttemptsResponse, error)
	ExportCSV() ([]byte, error)
	Clear() error
}

type dashboardService struct {
	store domain.ResultStore
}

func NewDashboardService(store domain.ResultStore) DashboardService {
	return &dashboardService{store: store}
}

func (s *dashboardService) Summary() (*dto.SummaryResponse, error) {
	attempts, err := s.store.LoadAll()
	if err != nil {
		return nil, domain.NewInternalError("failed to load results", err)
	}
	avg := 0.0
	if len(attempts) > 0 {
		sum := 0.0
		for _, a := range attempts {
			sum += a.Percentage
		}
		avg = math.Round(sum/float64(len(attempts))*100) / 100
	}
	return &dto.SummaryResponse{
		TotalAttempts:     len(attempts),
		AveragePercentage: avg,
	}, nil
}

// TopAttempts orders by percentage, ties broken by recency.
func (s *dashboardService) TopAttempts(limit int) (*dto.AttemptsResponse, error) {
	attempts, err := s.store.LoadAll()
	if err != nil {
		return nil, domain.NewInternalError("failed to load results", err)
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		if attempts[i].Percentage != attempts[j].Percentage {
			return attempts[i].Percentage > attempts[j].Percentage
		}
		return attempts[i].Timestamp.After(attempts[j].Timestamp)
	})
	if limit > 0 && len(attempts) > limit {
		attempts = attempts[:limit]
	}
	return toAttemptsResponse(attempts), nil
}

// AllAttempts lists everything, most recent first.
func (s *dashboardService) AllAttempts() (*dto.AttemptsResponse, error) {
	attempts, err := s.store.LoadAll()
	if err != nil {
		return nil, domain.NewInternalError("failed to load results", err)
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].Timestamp.After(attempts[j].Timestamp)
	})
	return toAttemptsResponse(attempts), nil
}

// ExportCSV renders the full store in its on-disk column layout for download.
func (s *dashboardService) ExportCSV() ([]byte, error) {
	attempts, err := s.store.LoadAll()
	if err != nil {
		return nil, domain.NewInternalError("failed to load results", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"timestamp", "student_name", "score", "total", "percentage", "details"}); err != nil {
		return nil, domain.NewInternalError("failed to export results", err)
	}
	for _, a := range attempts {
		details, err := json.Marshal(a.Details)
		if err != nil {
			return nil, domain.NewInternalError("failed to export results", err)
		}
		row := []string{
			a.Timestamp.Format(timestampLayout),
			a.StudentName,
			strconv.Itoa(a.Score),
			strconv.Itoa(a.Total),
			fmt.Sprintf("%.2f", a.Percentage),
			string(details),
		}
		if err := w.Write(row); err != nil {
			return nil, domain.NewInternalError("failed to export results", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, domain.NewInternalError("failed to export results", err)
	}
	return buf.Bytes(), nil
}

func (s *dashboardService) Clear() error {
	if err := s.store.Clear(); err != nil {
		return domain.NewInternalError("failed to clear results", err)
	}
	logger.Get().Info("Results store cleared")
	return nil
}

func toAttemptsResponse(attempts []*domain.QuizAttempt) *dto.AttemptsResponse {
	rows := make([]dto.AttemptRow, 0, len(attempts))
	for _, a := range attempts {
		rows = append(rows, dto.AttemptRow{
			Timestamp:   a.Timestamp.Format(timestampLayout),
			StudentName: a.StudentName,
			Score:       a.Score,
			Total:       a.Total,
			Percentage:  a.Percentage,
			Passed:      a.Passed,
		})
	}
	if len(rows) == 0 {
		logger.Get().Debug("Dashboard listing is empty", zap.Int("attempts", 0))
	}
	return &dto.AttemptsResponse{Attempts: rows}
}
