package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skolaplan/admin-service/internal/events"
	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/repositories"
	"github.com/skolaplan/admin-service/internal/utils"
	"github.com/skolaplan/admin-service/internal/validator"
)

type teacherService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

// NewTeacherService creates the teacher service.
func NewTeacherService(
	repo repositories.Repository,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger utils.Logger,
) TeacherService {
	return &teacherService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *teacherService) List(ctx context.Context, filters ListTeachersFilters) (*TeacherListResponse, error) {
	query := strings.TrimSpace(filters.Query)

	// The unfiltered visible list is the hot path and stays cached.
	if query == "" && filters.Status == nil && filters.Size <= 0 {
		teachers, err := s.repo.Teacher().ListVisible(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list teachers: %w", err)
		}
		return &TeacherListResponse{
			Teachers: teachers,
			Total:    len(teachers),
		}, nil
	}

	repoFilters := repositories.TeacherFilters{
		Status: filters.Status,
		Query:  query,
		// Deactivated teachers only show up when their status is asked for.
		VisibleOnly: filters.Status == nil,
	}
	if filters.Size > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		repoFilters.Limit = filters.Size
		repoFilters.Offset = (page - 1) * filters.Size
	}

	teachers, total, err := s.repo.Teacher().List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to search teachers: %w", err)
	}

	return &TeacherListResponse{
		Teachers: teachers,
		Total:    int(total),
	}, nil
}

func (s *teacherService) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	teacher, err := s.repo.Teacher().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get teacher %d: %w", id, err)
	}
	return teacher, nil
}

func (s *teacherService) Create(ctx context.Context, req *CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	email := strings.TrimSpace(req.Email)

	exists, err := s.repo.Teacher().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}

	teacher := &models.Teacher{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Status:    models.StatusInvited,
	}

	if err := s.repo.Teacher().Create(ctx, teacher); err != nil {
		// The unique index is the authoritative guard; the ExistsByEmail
		// check above only narrows the race window.
		if repositories.IsDuplicateError(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	s.logger.Info("teacher created", "teacher_id", teacher.ID, "email", teacher.Email)
	s.publishEvent(ctx, events.TypeTeacherCreated, teacher)

	return teacher, nil
}

func (s *teacherService) Update(ctx context.Context, id uint, req *UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	teacher, err := s.repo.Teacher().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get teacher %d: %w", id, err)
	}

	if req.FirstName != nil {
		teacher.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		teacher.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != teacher.Email {
			exists, err := s.repo.Teacher().ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email availability: %w", err)
			}
			if exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
			}
			teacher.Email = email
		}
	}

	if err := s.repo.Teacher().Update(ctx, teacher); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, teacher.Email)
		}
		return nil, fmt.Errorf("failed to update teacher %d: %w", id, err)
	}

	s.logger.Info("teacher updated", "teacher_id", teacher.ID)
	s.publishEvent(ctx, events.TypeTeacherUpdated, teacher)

	return teacher, nil
}

func (s *teacherService) Deactivate(ctx context.Context, id uint) error {
	teacher, err := s.repo.Teacher().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get teacher %d: %w", id, err)
	}

	// Deactivating twice is a no-op, not an error.
	if teacher.Status == models.StatusDeactivated {
		return nil
	}

	teacher.Status = models.StatusDeactivated
	if err := s.repo.Teacher().Update(ctx, teacher); err != nil {
		return fmt.Errorf("failed to deactivate teacher %d: %w", id, err)
	}

	s.logger.Info("teacher deactivated", "teacher_id", teacher.ID, "email", teacher.Email)
	s.publishEvent(ctx, events.TypeTeacherDeactivated, teacher)

	return nil
}

// publishEvent sends a domain event best-effort. Admin flows never fail on a
// broker error.
func (s *teacherService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}
