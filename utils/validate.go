package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct runs struct-tag validation and flattens the result into a
// field -> message map for the 422 response body.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		switch fe.Tag() {
		case "required":
			errors[fe.Field()] = "This field is required!"
		case "email":
			errors[fe.Field()] = "Must be a valid email address!"
		case "min":
			errors[fe.Field()] = "Must be at least " + fe.Param() + " characters long!"
		case "max":
			errors[fe.Field()] = "Must be at most " + fe.Param() + " characters long!"
		case "oneof":
			errors[fe.Field()] = "Must be one of: " + fe.Param()
		case "url":
			errors[fe.Field()] = "Must be a valid URL!"
		case "gte":
			errors[fe.Field()] = "Must be greater than or equal to " + fe.Param() + "!"
		case "lte":
			errors[fe.Field()] = "Must be less than or equal to " + fe.Param() + "!"
		default:
			errors[fe.Field()] = "Invalid value!"
		}
	}
	return errors
}
