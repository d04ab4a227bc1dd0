package services

import (
	"context"
	"io"

	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request validation lives with the validator package.
type CreateTeacherRequest = validator.TeacherCreateRequest
type UpdateTeacherRequest = validator.TeacherUpdateRequest
type CreateWorkPeriodRequest = validator.WorkPeriodCreateRequest
type UpdateWorkPeriodRequest = validator.WorkPeriodUpdateRequest

type TeacherListResponse struct {
	Teachers []*models.Teacher `json:"teachers"`
	Total    int               `json:"total"`
}

// ListTeachersFilters narrows the teacher listing. The zero value means the
// plain visible list.
type ListTeachersFilters struct {
	// Query matches first name, last name or email, case-insensitively.
	Query  string
	Status *models.TeacherStatus
	Page   int
	Size   int
}

type WorkPeriodListResponse struct {
	WorkPeriods []*models.WorkPeriod `json:"work_periods"`
	Total       int                  `json:"total"`
}

// ===== SERVICE INTERFACES =====

type TeacherService interface {
	// List returns teachers ordered by first name. Without filters it is the
	// visible list: everyone not deactivated. A search query or explicit
	// status narrows it; deactivated teachers only appear when asked for.
	List(ctx context.Context, filters ListTeachersFilters) (*TeacherListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	Create(ctx context.Context, req *CreateTeacherRequest) (*models.Teacher, error)
	Update(ctx context.Context, id uint, req *UpdateTeacherRequest) (*models.Teacher, error)

	// Deactivate soft-removes a teacher; the record stays in the store.
	Deactivate(ctx context.Context, id uint) error
}

type WorkPeriodService interface {
	// List returns all periods ordered by start date descending.
	List(ctx context.Context) (*WorkPeriodListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.WorkPeriod, error)
	Create(ctx context.Context, req *CreateWorkPeriodRequest) (*models.WorkPeriod, error)
	Update(ctx context.Context, id uint, req *UpdateWorkPeriodRequest) (*models.WorkPeriod, error)
}

type ImportService interface {
	// ImportTeachers runs the spreadsheet pipeline: scan every sheet,
	// validate each row, stage accepted teachers and commit them in one
	// transaction. The report carries both the persisted teachers and the
	// per-row rejections.
	ImportTeachers(ctx context.Context, upload io.Reader) (*models.ImportReport, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Teacher() TeacherService
	WorkPeriod() WorkPeriodService
	Import() ImportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
