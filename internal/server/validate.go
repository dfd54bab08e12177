package server

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

// FieldsError maps request field names to translated validation messages.
type FieldsError struct {
	Fields map[string]string
}

func (f *FieldsError) Error() string {
	return "Fields error"
}

// Validator validates request structs and reports errors by JSON field
// name in English.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, trans: trans}
}

// ParseAndValidate decodes the request body into req and validates it.
func (v *Validator) ParseAndValidate(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is not valid")
	}
	return v.Struct(req)
}

// ParseQuery decodes query parameters into req and validates it.
func (v *Validator) ParseQuery(c *fiber.Ctx, req any) error {
	if err := c.QueryParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query is not valid")
	}
	return v.Struct(req)
}

// Struct validates req, returning *FieldsError on constraint failures.
func (v *Validator) Struct(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fiber.NewError(fiber.StatusBadRequest, "Request is not valid")
	}
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field()] = e.Translate(v.trans)
	}
	return &FieldsError{Fields: fields}
}
