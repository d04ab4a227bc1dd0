package repositories

import (
	"context"

	"github.com/skolaplan/admin-service/internal/models"
)

// TeacherFilters defines filters for teacher queries.
type TeacherFilters struct {
	Status *models.TeacherStatus
	Query  string // Search query for name or email
	// VisibleOnly hides deactivated teachers; ignored when Status is set.
	VisibleOnly bool
	Limit       int
	Offset      int
}

// TeacherRepository persists teacher records.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error

	// ListVisible returns non-deactivated teachers ordered by first name.
	ListVisible(ctx context.Context) ([]*models.Teacher, error)
	List(ctx context.Context, filters TeacherFilters) ([]*models.Teacher, int64, error)

	// ExistsByEmail ignores status: a deactivated teacher still reserves
	// their address.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
