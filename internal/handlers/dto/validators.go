package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/automarket-backend/internal/domain/entities"
)

// RegisterCustomValidators registra as validações de domínio no engine
// do Gin. Deve ser chamado uma vez no bootstrap.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// moderation_decision: aceita somente "approved" ou "rejected".
	// "pending" nunca é uma decisão válida de moderação.
	return v.RegisterValidation("moderation_decision", func(fl validator.FieldLevel) bool {
		return entities.ListingStatus(fl.Field().String()).IsDecision()
	})
}
