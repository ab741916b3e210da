package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators registra no validator do gin os validadores "votetype"
// e "slug" e faz os erros usarem o nome JSON do campo.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected validator engine")
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := v.RegisterValidation("votetype", validateVoteType); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("slug", validateSlug)
	})
	return registerErr
}

func validateVoteType(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		_, err := valueobjects.NewVoteType(int(field.Int()))
		return err == nil
	default:
		return false
	}
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// TranslateValidationErrors converte os erros do validator em mensagens
// traduzidas. Retorna nil quando err não veio do validator.
func TranslateValidationErrors(c *gin.Context, err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	result := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		params := map[string]interface{}{"Field": fe.Field(), "Param": fe.Param()}

		key := "validation." + fe.Tag()
		message := T(c, key, params)
		if message == key {
			message = T(c, "validation.default", params)
		}

		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: message,
			Tag:     fe.Tag(),
		})
	}
	return result
}
