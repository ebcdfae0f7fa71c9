package event

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nattapongw/calendar-api/internal/model"
)

// The eventtype binding tag rejects unknown type slugs at bind time, before
// the request reaches the service layer.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
			return model.EventType(fl.Field().String()).Valid()
		})
	}
}
