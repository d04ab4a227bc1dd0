package services

import (
	"context"
	"fmt"

	"github.com/skolaplan/admin-service/internal/config"
	"github.com/skolaplan/admin-service/internal/events"
	"github.com/skolaplan/admin-service/internal/repositories"
	"github.com/skolaplan/admin-service/internal/utils"
	"github.com/skolaplan/admin-service/internal/validator"
)

// Manager wires the services over one repository manager and one event
// publisher.
type Manager struct {
	repoManager repositories.RepositoryManager
	publisher   events.EventPublisher
	logger      utils.Logger

	teacher    TeacherService
	workPeriod WorkPeriodService
	importer   ImportService
}

func NewServiceManager(
	repoManager repositories.RepositoryManager,
	v *validator.Validator,
	publisher events.EventPublisher,
	cfg *config.Config,
	logger utils.Logger,
) *Manager {
	repo := repoManager.GetRepository()

	return &Manager{
		repoManager: repoManager,
		publisher:   publisher,
		logger:      logger,
		teacher:     NewTeacherService(repo, v, publisher, logger),
		workPeriod:  NewWorkPeriodService(repo, v, publisher, logger),
		importer:    NewImportService(repo, publisher, logger, cfg.Import.HasHeaderRow),
	}
}

func (m *Manager) Teacher() TeacherService       { return m.teacher }
func (m *Manager) WorkPeriod() WorkPeriodService { return m.workPeriod }
func (m *Manager) Import() ImportService         { return m.importer }

func (m *Manager) Initialize(ctx context.Context) error {
	if err := m.repoManager.HealthCheck(ctx); err != nil {
		return fmt.Errorf("repository not ready: %w", err)
	}
	m.logger.Info("service manager initialized")
	return nil
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	return m.repoManager.HealthCheck(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			m.logger.Error("failed to close event publisher", "error", err)
		}
	}
	return m.repoManager.Shutdown(ctx)
}
