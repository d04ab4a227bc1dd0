package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/skolaplan/admin-service/internal/events"
	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/repositories"
	"github.com/skolaplan/admin-service/internal/utils"
	"github.com/skolaplan/admin-service/internal/validator"
)

const dateLayout = "2006-01-02"

type workPeriodService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

// NewWorkPeriodService creates the work period service.
func NewWorkPeriodService(
	repo repositories.Repository,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger utils.Logger,
) WorkPeriodService {
	return &workPeriodService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *workPeriodService) List(ctx context.Context) (*WorkPeriodListResponse, error) {
	periods, err := s.repo.WorkPeriod().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work periods: %w", err)
	}

	return &WorkPeriodListResponse{
		WorkPeriods: periods,
		Total:       len(periods),
	}, nil
}

func (s *workPeriodService) GetByID(ctx context.Context, id uint) (*models.WorkPeriod, error) {
	period, err := s.repo.WorkPeriod().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get work period %d: %w", id, err)
	}
	return period, nil
}

func (s *workPeriodService) Create(ctx context.Context, req *CreateWorkPeriodRequest) (*models.WorkPeriod, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	start, end, err := parseDateRange(req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}
	if err := s.validator.ValidateWorkPeriodDates(start, end); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	period := &models.WorkPeriod{
		Start: datatypes.Date(start),
		End:   datatypes.Date(end),
	}

	if err := s.repo.WorkPeriod().Create(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to create work period: %w", err)
	}

	s.logger.Info("work period created", "work_period_id", period.ID,
		"start", req.Start, "end", req.End)
	s.publishEvent(ctx, events.TypeWorkPeriodCreated, period)

	return period, nil
}

func (s *workPeriodService) Update(ctx context.Context, id uint, req *UpdateWorkPeriodRequest) (*models.WorkPeriod, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	period, err := s.repo.WorkPeriod().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get work period %d: %w", id, err)
	}

	start := time.Time(period.Start)
	end := time.Time(period.End)

	if req.Start != nil {
		if start, err = time.Parse(dateLayout, *req.Start); err != nil {
			return nil, fmt.Errorf("%w: start: %s", ErrValidationFailed, err.Error())
		}
	}
	if req.End != nil {
		if end, err = time.Parse(dateLayout, *req.End); err != nil {
			return nil, fmt.Errorf("%w: end: %s", ErrValidationFailed, err.Error())
		}
	}

	if err := s.validator.ValidateWorkPeriodDates(start, end); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	period.Start = datatypes.Date(start)
	period.End = datatypes.Date(end)

	if err := s.repo.WorkPeriod().Update(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to update work period %d: %w", id, err)
	}

	s.logger.Info("work period updated", "work_period_id", period.ID)

	return period, nil
}

func parseDateRange(startStr, endStr string) (start, end time.Time, err error) {
	if start, err = time.Parse(dateLayout, startStr); err != nil {
		return start, end, fmt.Errorf("start: %v", err)
	}
	if end, err = time.Parse(dateLayout, endStr); err != nil {
		return start, end, fmt.Errorf("end: %v", err)
	}
	return start, end, nil
}

func (s *workPeriodService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}
