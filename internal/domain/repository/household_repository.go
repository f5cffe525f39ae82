package repository

import (
	"context"

	"github.com/jcastano/despensa-api/internal/domain/entity"
)

// HouseholdRepository puerto de persistencia de hogares.
type HouseholdRepository interface {
	Create(ctx context.Context, h *entity.Household) error
	GetByID(ctx context.Context, id string) (*entity.Household, error)
	GetByName(ctx context.Context, name string) (*entity.Household, error)
}
