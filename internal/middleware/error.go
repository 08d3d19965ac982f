package middleware

import (
	"errors"
	"net/http"

	"secquiz/internal/domain"
	"secquiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorHandler is the centralized fiber error handler: handlers return
// domain errors and this maps them to HTTP statuses and response bodies.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			log.Warn("Validation error",
				zap.String("path", c.Path()),
				zap.String("message", validationErr.Error()),
			)
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Code:    string(domain.ErrInvalidInput),
				Message: validationErr.Error(),
				Status:  http.StatusBadRequest,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Err),
			)

			response := ErrorResponse{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Status:  statusCode,
			}

			// An unparseable generation keeps its raw text reachable so the
			// client can show it and offer a regeneration.
			var unparseable *domain.UnparseableQuizError
			if errors.As(err, &unparseable) {
				response.Details = map[string]interface{}{
					"raw_text":       unparseable.RawText,
					"dropped_blocks": unparseable.Dropped,
				}
			}

			return c.Status(statusCode).JSON(response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.ErrInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.ErrInvalidInput:
		return http.StatusBadRequest
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrNotFound, domain.ErrQuizNotFound:
		return http.StatusNotFound
	case domain.ErrQuizUnparseable:
		return http.StatusUnprocessableEntity
	case domain.ErrGeneratorNotConfigured:
		return http.StatusServiceUnavailable
	case domain.ErrLLMServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
