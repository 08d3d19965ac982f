package dto

// GenerateQuizRequest starts a new quiz for a student.
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	StudentName string `json:"student_name"`
	Categories  string `json:"categories"`
}

// QuestionView is a question as shown to the student. The correct answer is
// deliberately absent.
type QuestionView struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// QuizResponse represents a pending quiz in the API response
// @Description Pending quiz, ready to be answered
type QuizResponse struct {
	QuizID      string         `json:"quiz_id"`
	StudentName string         `json:"student_name"`
	Total       int            `json:"total"`
	Dropped     int            `json:"dropped,omitempty"`
	Questions   []QuestionView `json:"questions"`
}

// SubmitAnswersRequest carries the selected option text per question, index
// aligned with the quiz's questions. An empty string means unanswered.
type SubmitAnswersRequest struct {
	Answers []string `json:"answers"`
}

// AnswerDetailResponse is the per-question feedback after submission.
type AnswerDetailResponse struct {
	Index     int    `json:"q_index"`
	Question  string `json:"question"`
	Selected  string `json:"selected"`
	Correct   string `json:"correct"`
	Context   string `json:"context,omitempty"`
	IsCorrect bool   `json:"is_correct"`
}

// AttemptResponse represents a scored attempt in the API response
type AttemptResponse struct {
	AttemptID   string                 `json:"attempt_id"`
	StudentName string                 `json:"student_name"`
	Score       int                    `json:"score"`
	Total       int                    `json:"total"`
	Percentage  float64                `json:"percentage"`
	Passed      bool                   `json:"passed"`
	Details     []AnswerDetailResponse `json:"details"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
