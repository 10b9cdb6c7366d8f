package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError lists violated constraints of request payload
type PayloadError struct {
	violations []violation
}

func (e *PayloadError) Error() string {
	var b strings.Builder
	for i, v := range e.violations {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.Message)
	}
	return b.String()
}

// Violation appends violated constraint
func (e *PayloadError) Violation(field, message string) {
	e.violations = append(e.violations, violation{Field: field, Message: message})
}

// Fields returns names of fields with violations in reporting order
func (e *PayloadError) Fields() []string {
	fields := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EchoValidator plugs go-playground validator into echo
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds echo validator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

// English builds validator with default english messages, fields are reported by json name
func English() (*EchoValidator, error) {
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)

	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("missing en translations")
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register en translations - %w", err)
	}
	return Echo(v, trans), nil
}

func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]violation, 0, len(ve))}
	for _, e := range ve {
		pldErr.Violation(e.Field(), e.Translate(v.translator))
	}
	return pldErr
}
