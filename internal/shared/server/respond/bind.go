package respond

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldMessager lets a request type replace the generated message for a
// failed rule. Keys are "<json field>.<tag>".
type FieldMessager interface {
	FieldMessages() map[string]string
}

var setupOnce sync.Once

func setupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// BindJSON decodes and validates the body into dst. On failure it writes the
// 400 envelope and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	setupValidator()
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	fe := verrs[0]
	msg := ValidationMessage(fe)
	if m, ok := dst.(FieldMessager); ok {
		if override, ok := m.FieldMessages()[fe.Field()+"."+fe.Tag()]; ok {
			msg = override
		}
	}
	Error(c, http.StatusBadRequest, "validation_error", msg, map[string]any{
		"field": fe.Field(),
		"rule":  fe.Tag(),
	})
	return false
}

// ValidationMessage renders one failed rule as a client-facing sentence.
func ValidationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be %s", field, orList(strings.Fields(fe.Param())))
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s characters or fewer", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func orList(opts []string) string {
	switch len(opts) {
	case 0:
		return ""
	case 1:
		return opts[0]
	}
	return strings.Join(opts[:len(opts)-1], ", ") + " or " + opts[len(opts)-1]
}
