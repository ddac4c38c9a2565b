package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// registerCustomValidators adds the domain validation tags used by request
// DTOs to gin's binding validator.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("invoicestatus", func(fl validator.FieldLevel) bool {
		return domain.InvoiceStatus(fl.Field().String()).IsValid()
	})
}
