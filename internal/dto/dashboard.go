package dto

// SummaryResponse is the dashboard headline: attempt count and mean
// percentage (0 on an empty store).
type SummaryResponse struct {
	TotalAttempts     int     `json:"total_attempts"`
	AveragePercentage float64 `json:"average_percentage"`
}

// AttemptRow is one attempt in a dashboard listing.
type AttemptRow struct {
	Timestamp   string  `json:"timestamp"`
	StudentName string  `json:"student_name"`
	Score       int     `json:"score"`
	Total       int     `json:"total"`
	Percentage  float64 `json:"percentage"`
	Passed      bool    `json:"passed"`
}

// AttemptsResponse wraps a dashboard listing.
type AttemptsResponse struct {
	Attempts []AttemptRow `json:"attempts"`
}
