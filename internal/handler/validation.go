package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"taskboard/internal/apperror"
	"taskboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var registerOnce sync.Once

// RegisterValidation makes the binding validator report fields by their json
// names so that error paths match the request body.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// bindJSON decodes and validates the request body into dst.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindingError(err)
	}
	return nil
}

func bindingError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]apperror.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, fieldError(fe))
		}
		return apperror.Validation(details...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperror.Validation(apperror.FieldError{
			Message: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()),
			Path:    typeErr.Field,
			Type:    "type",
		})
	}

	return apperror.Validation(apperror.FieldError{
		Message: "Request body must be valid JSON",
		Path:    "body",
		Type:    "json",
	})
}

func fieldError(fe validator.FieldError) apperror.FieldError {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "email":
		msg = field + " must be a valid email"
	case "uuid":
		msg = field + " must be a valid UUID"
	case "gt":
		msg = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		msg = field + " is invalid"
	}
	return apperror.FieldError{Message: msg, Path: field, Type: fe.Tag()}
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(apperror.FieldError{
			Message: name + " must be a valid UUID",
			Path:    name,
			Type:    "uuid",
		})
	}
	return id, nil
}

// currentUser returns the id the auth middleware stored for the request.
func currentUser(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, apperror.Unauthorized("Not authenticated")
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("Not authenticated")
	}
	return userID, nil
}
