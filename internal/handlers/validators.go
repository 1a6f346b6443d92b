package handlers

import (
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorsOnce sync.Once

// registerCustomValidators installs domain validations on gin's binding
// engine. Safe to call more than once.
func registerCustomValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// coursecode: the 4-letter code embedded in student and
		// certificate numbers, e.g. PHRM.
		_ = v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
			code := fl.Field().String()
			if len(code) != 4 {
				return false
			}
			for _, r := range code {
				if !unicode.IsLetter(r) {
					return false
				}
			}
			return true
		})
	})
}
