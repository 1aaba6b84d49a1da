package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

var validate = validator.New()

// validationMiddleware parses and validates request bodies, storing the
// result in c.Locals("validatedBody")
func validationMiddleware(c *fiber.Ctx) error {
	method := c.Method()
	if method != fiber.MethodPost {
		return c.Next()
	}

	path := c.Path()
	var requestType any

	switch {
	case strings.HasSuffix(path, "/games"):
		requestType = &core.CreateGameRequest{}
	case strings.HasSuffix(path, "/moves"):
		requestType = &core.MoveRequest{}
	default:
		return c.Next() // No validation for unknown endpoints
	}

	// empty body is allowed for game creation: standard position, two humans
	if len(c.Body()) > 0 {
		if err := c.BodyParser(requestType); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error:   "invalid request body",
				Code:    core.ErrCodeInvalidRequest,
				Details: err.Error(),
			})
		}
	}

	if errs := validate.Struct(requestType); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrCodeInvalidRequest,
			Details: describeValidation(errs),
		})
	}

	c.Locals("validatedBody", requestType)
	c.Locals("validated", true)

	return c.Next()
}

func describeValidation(errs error) string {
	verrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return errs.Error()
	}

	var details strings.Builder
	for _, err := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param()))
		case "len":
			details.WriteString(fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param()))
		case "max":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", err.Field(), err.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return details.String()
}

// validatedBody fetches the body stored by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (T, bool) {
	var zero T
	if validated, ok := c.Locals("validated").(bool); !ok || !validated {
		return zero, false
	}
	body, ok := c.Locals("validatedBody").(*T)
	if !ok || body == nil {
		return zero, false
	}
	return *body, true
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
