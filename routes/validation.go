package routes

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hotel-booking-backend/utils"
)

// registerValidators hooks custom rules into gin's binding validator.
// `dateformat` accepts calendar dates in YYYY-MM-DD form.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(utils.DateLayout, fl.Field().String())
		return err == nil
	})
}
