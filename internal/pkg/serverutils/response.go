package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"legis-catalog-client/internal/service"
	"legis-catalog-client/pkg/legiscan"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	// DisplaySeconds hints how long the frontend should keep the message
	// visible before auto-clearing it.
	DisplaySeconds int `json:"displaySeconds,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

func ErrorResponse(message string, displaySeconds int) Response {
	return Response{Success: false, Message: message, DisplaySeconds: displaySeconds}
}

var validate = validator.New()

type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return &ValidationError{Cause: err}
	}
	return nil
}

// Transient validation-class messages clear fast; timeout and
// infrastructure messages stay up longer because retrying immediately
// will not help.
const (
	displayShort = 5
	displayLong  = 12
)

// ErrorHandlerMiddleware converts the error taxonomy into HTTP responses.
// Nothing escapes unhandled: unknown errors become a generic 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var timeoutErr *legiscan.TimeoutError
		if errors.As(err, &timeoutErr) {
			return ctx.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse(
				"The data service took too long to respond. Try a smaller window.", displayLong))
		}

		var contentTypeErr *legiscan.UnexpectedContentTypeError
		if errors.As(err, &contentTypeErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(
				"The data service may be down. Please try again later.", displayLong))
		}

		var inFlightErr *service.FetchInFlightError
		if errors.As(err, &inFlightErr) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(inFlightErr.Error(), displayShort))
		}

		var mutationErr *service.MutationError
		if errors.As(err, &mutationErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(
				"The change could not be saved and has been undone.", displayShort))
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Error(), displayShort))
		}

		var statusErr *legiscan.HttpStatusError
		if errors.As(err, &statusErr) {
			message := statusErr.Message
			if message == "" {
				message = "The data service rejected the request."
			}
			return ctx.Status(statusErr.Status).JSON(ErrorResponse(message, displayShort))
		}

		if errors.Is(err, service.ErrBillNotFound) || errors.Is(err, service.ErrUnstableBillId) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(err.Error(), displayShort))
		}
		if errors.Is(err, service.ErrMutationInFlight) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error(), displayShort))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message, displayShort))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
			"Something went wrong.", displayShort))
	}
}
