package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must not exceed %s characters", fe.Param())
	case "numeric":
		return "Value must be numeric"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "printascii":
		return "Value must contain printable ASCII characters only"
	default:
		return "Invalid value"
	}
}

// jsonPath turns a validator namespace such as "ShoppingListRequest.Ingredients[0].Name"
// into the wire name "ingredients[0].name" using the json tags of model.
func jsonPath(structType reflect.Type, namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	out := make([]string, 0, len(parts))
	current := structType
	for _, part := range parts {
		name, index := part, ""
		if i := strings.IndexByte(part, '['); i >= 0 {
			name, index = part[:i], part[i:]
		}

		jsonName := name
		if current != nil && current.Kind() == reflect.Struct {
			if field, found := current.FieldByName(name); found {
				jsonName = wireName(field, name)
				current = field.Type
				for current.Kind() == reflect.Ptr || current.Kind() == reflect.Slice {
					current = current.Elem()
				}
			} else {
				current = nil
			}
		}
		out = append(out, jsonName+index)
	}

	return strings.Join(out, ".")
}

// wireName prefers the json tag and falls back to the form tag used by query binding.
func wireName(field reflect.StructField, fallback string) string {
	for _, key := range []string{"json", "form"} {
		if tag := strings.Split(field.Tag.Get(key), ",")[0]; tag != "" && tag != "-" {
			return tag
		}
	}
	return fallback
}

func FormatValidationErrors(err error, model interface{}) []ValidationErrorResponse {
	var errorsList []ValidationErrorResponse

	if err == nil {
		return errorsList
	}

	var jsonErr *json.UnmarshalTypeError
	if errors.As(err, &jsonErr) {
		return []ValidationErrorResponse{
			{
				Field:   jsonErr.Field,
				Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", jsonErr.Field, jsonErr.Type, jsonErr.Value),
			},
		}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorsList
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	errorsList = make([]ValidationErrorResponse, len(validationErrors))
	for i, fieldError := range validationErrors {
		field := fieldError.Field()
		if structType != nil {
			field = jsonPath(structType, fieldError.StructNamespace())
		}

		errorsList[i] = ValidationErrorResponse{
			Field:   field,
			Message: msgForTag(fieldError),
		}
	}

	return errorsList
}
