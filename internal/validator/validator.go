// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"dealcanvas/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("entity_kind", validateEntityKind)
	}
}

func validateEntityKind(fl validator.FieldLevel) bool {
	switch models.EntityKind(fl.Field().String()) {
	case models.EntityKindDeal, models.EntityKindCashflow:
		return true
	}
	return false
}
