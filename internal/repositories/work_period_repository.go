package repositories

import (
	"context"

	"github.com/skolaplan/admin-service/internal/models"
)

// WorkPeriodRepository persists work periods. There is intentionally no
// delete operation.
type WorkPeriodRepository interface {
	Create(ctx context.Context, period *models.WorkPeriod) error
	GetByID(ctx context.Context, id uint) (*models.WorkPeriod, error)
	Update(ctx context.Context, period *models.WorkPeriod) error

	// List returns all periods ordered by start date descending.
	List(ctx context.Context) ([]*models.WorkPeriod, error)
}
