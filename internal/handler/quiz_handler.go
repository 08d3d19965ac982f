package handler

import (
	"secquiz/internal/domain"
	"secquiz/internal/dto"
	"secquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles the student-facing quiz requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// Generate godoc
// @Summary Generate a quiz
// @Description Generates a new quiz for the given student and categories
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation Request"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	quiz, err := h.service.Generate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// Get godoc
// @Summary Fetch a pending quiz
// @Description Returns a previously generated quiz that has not been submitted yet
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) Get(c *fiber.Ctx) error {
	quiz, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// Submit godoc
// @Summary Submit answers
// @Description Scores the submitted answers and persists the attempt
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitAnswersRequest true "Answers"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id}/submit [post]
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	attempt, err := h.service.Submit(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(attempt)
}

// Discard godoc
// @Summary Discard a pending quiz
// @Description Removes a generated quiz without scoring it
// @Tags quiz
// @Param id path string true "Quiz ID"
// @Success 204
// @Router /quiz/{id} [delete]
func (h *QuizHandler) Discard(c *fiber.Ctx) error {
	if err := h.service.Discard(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
