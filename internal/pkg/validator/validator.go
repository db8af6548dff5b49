// Package validator wraps go-playground/validator with English error messages
// and field names taken from the yaml struct tags.
package validator

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

const nestedTagName = "__nested__"

type Validator interface {
	Validate(ctx context.Context, value any) error
	ValidateCtx(ctx context.Context, value any, tag string, namespace string) error
}

// Rule is a custom validation registered under Tag.
type Rule struct {
	Tag          string
	Func         validator.Func
	ErrorMessage string
}

type wrapper struct {
	validator  *validator.Validate
	translator ut.Translator
}

func New(rules ...Rule) Validator {
	v := &wrapper{validator: validator.New()}

	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	v.translator = translator
	if err := enTranslation.RegisterDefaultTranslations(v.validator, translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}

	for _, rule := range rules {
		v.registerRule(rule)
	}

	// Use yaml field names in error messages, hide anonymous fields.
	v.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if fld.Anonymous {
			return nestedTagName
		}
		for _, tag := range []string{"yaml", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return fld.Name
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// Validate validates a struct, or each item of a slice or map.
func (v *wrapper) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "dive", "")
}

func (v *wrapper) ValidateCtx(ctx context.Context, value any, tag string, namespace string) error {
	var err error
	if isStruct(value) {
		err = v.validator.StructCtx(ctx, value)
	} else {
		err = v.validator.VarCtx(ctx, value, tag)
	}
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.processError(validationErrs, namespace)
		}
		panic(err)
	}
	return nil
}

func (v *wrapper) registerRule(rule Rule) {
	if err := v.validator.RegisterValidation(rule.Tag, rule.Func); err != nil {
		panic(err)
	}
	if rule.ErrorMessage == "" {
		return
	}
	register := func(ut ut.Translator) error {
		return ut.Add(rule.Tag, rule.ErrorMessage, true)
	}
	translate := func(ut ut.Translator, fe validator.FieldError) string {
		msg, err := ut.T(fe.Tag(), fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
	if err := v.validator.RegisterTranslation(rule.Tag, v.translator, register, translate); err != nil {
		panic(err)
	}
}

func (v *wrapper) processError(err validator.ValidationErrors, namespace string) error {
	result := errors.NewMultiError()
	for _, e := range err {
		field := namespace
		if ns := processNamespace(e.Namespace()); ns != "" {
			if field != "" {
				field += "."
			}
			field += ns
		}
		msg := e.Translate(v.translator)
		// Replace the bare field name in the message by the full path.
		if field != "" {
			msg = strings.Replace(msg, e.Field(), fmt.Sprintf(`"%s.%s"`, field, e.Field()), 1)
		} else {
			msg = strings.Replace(msg, e.Field(), fmt.Sprintf(`"%s"`, e.Field()), 1)
		}
		result.Append(errors.New(msg))
	}
	return result.ErrorOrNil()
}

func isStruct(value any) bool {
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

// processNamespace removes struct name (first part), field name (last part) and nested parts.
func processNamespace(namespace string) string {
	namespace = strings.ReplaceAll(namespace, nestedTagName+".", "")
	parts := strings.Split(namespace, ".")
	if strings.HasPrefix(namespace, "[") {
		// Slice or map item validated directly, there is no struct name.
		return strings.Join(parts[:len(parts)-1], ".")
	}
	if len(parts) <= 2 {
		return ""
	}
	return strings.Join(parts[1:len(parts)-1], ".")
}
