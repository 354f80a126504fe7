package services

import (
	"context"

	"github.com/google/uuid"

	"go-commerce/models"
)

// SandboxProcessor is the bundled PaymentProcessor used outside production.
// It approves every charge and mints a reference; a real gateway client
// plugs in behind the same interface.
type SandboxProcessor struct{}

func (SandboxProcessor) Process(ctx context.Context, order *models.Order) (PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return PaymentResult{}, err
	}
	return PaymentResult{
		Success:   true,
		Reference: uuid.NewString(),
	}, nil
}
