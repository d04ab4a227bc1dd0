package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/skolaplan/admin-service/internal/events"
	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/repositories"
	"github.com/skolaplan/admin-service/internal/utils"
	"github.com/skolaplan/admin-service/internal/validator"
)

// importSummary is the event payload for a completed bulk import.
type importSummary struct {
	Imported  int `json:"imported"`
	Rejected  int `json:"rejected"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

type importService struct {
	repo         repositories.Repository
	publisher    events.EventPublisher
	logger       utils.Logger
	hasHeaderRow bool
}

// NewImportService creates the bulk import service. With hasHeaderRow set,
// the first row of every sheet is treated as column labels and skipped.
func NewImportService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger utils.Logger,
	hasHeaderRow bool,
) ImportService {
	return &importService{
		repo:         repo,
		publisher:    publisher,
		logger:       logger,
		hasHeaderRow: hasHeaderRow,
	}
}

// ImportTeachers scans every sheet of the uploaded workbook, validates each
// row and commits all accepted teachers in one transaction. A workbook with
// any number of bad rows still imports its good ones; only a storage failure
// aborts the batch.
func (s *importService) ImportTeachers(ctx context.Context, upload io.Reader) (*models.ImportReport, error) {
	f, err := excelize.OpenReader(upload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileFormat, err.Error())
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	report := &models.ImportReport{}
	staged := make([]*models.Teacher, 0)
	// Emails already staged in this batch; the store is consulted per row for
	// everything committed before this upload.
	seen := make(map[string]bool)

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}

		for i, cells := range rows {
			if s.hasHeaderRow && i == 0 {
				continue
			}

			row := validator.ImportRow{
				FirstName: cell(cells, 0),
				LastName:  cell(cells, 1),
				Email:     cell(cells, 2),
				WorkHours: cell(cells, 3),
			}

			// Rows with any empty cell are skipped without comment; partial
			// rows are how spreadsheets pad their tails.
			if row.Incomplete() {
				report.Skipped++
				continue
			}
			report.Processed++

			if reason, ok := validator.ValidateImportRow(row); !ok {
				report.Rejected = append(report.Rejected, models.RowRejection{
					Sheet:  sheet,
					Row:    i + 1,
					Reason: reason,
				})
				continue
			}

			email := strings.TrimSpace(row.Email)
			duplicate := seen[email]
			if !duplicate {
				exists, err := s.repo.Teacher().ExistsByEmail(ctx, email)
				if err != nil {
					return nil, fmt.Errorf("failed to check email availability: %w", err)
				}
				duplicate = exists
			}
			if duplicate {
				report.Rejected = append(report.Rejected, models.RowRejection{
					Sheet: sheet,
					Row:   i + 1,
					Reason: fmt.Sprintf("could not add %s %s: %s is already registered",
						row.FirstName, row.LastName, email),
				})
				continue
			}

			seen[email] = true
			staged = append(staged, &models.Teacher{
				FirstName: strings.TrimSpace(row.FirstName),
				LastName:  strings.TrimSpace(row.LastName),
				Email:     email,
				Status:    models.StatusInvited,
			})
		}
	}

	if len(staged) > 0 {
		err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
			for _, teacher := range staged {
				if err := tx.Teacher().Create(ctx, teacher); err != nil {
					return fmt.Errorf("failed to import %s: %w", teacher.Email, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("import transaction failed: %w", err)
		}
	}
	report.Imported = staged

	s.logger.Info("teacher import completed",
		"imported", len(report.Imported),
		"rejected", len(report.Rejected),
		"processed", report.Processed,
		"skipped", report.Skipped,
	)

	if s.publisher != nil {
		event := events.NewEvent(events.TypeImportCompleted, importSummary{
			Imported:  len(report.Imported),
			Rejected:  len(report.Rejected),
			Processed: report.Processed,
			Skipped:   report.Skipped,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish event", "event_type", events.TypeImportCompleted, "error", err)
		}
	}

	return report, nil
}

// cell returns column i of a row, tolerating the short slices excelize
// produces when trailing cells are empty.
func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
