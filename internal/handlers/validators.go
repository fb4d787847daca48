package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/ledgerline/bookkeeping_app/internal/utils"
)

// RegisterCustomValidators installs the binding validators the DTOs rely
// on: txdate for YYYY-MM-DD calendar dates and amountstr for non-negative
// decimal amount strings.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine type")
	}

	if err := v.RegisterValidation("txdate", func(fl validator.FieldLevel) bool {
		return domain.ValidDate(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register txdate validator: %w", err)
	}

	if err := v.RegisterValidation("amountstr", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseAmount(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("failed to register amountstr validator: %w", err)
	}

	return nil
}
