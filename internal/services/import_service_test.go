package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/skolaplan/admin-service/internal/events"
	"github.com/skolaplan/admin-service/internal/models"
)

var importHeader = []string{"First name", "Last name", "Email", "Work hours"}

// buildWorkbook writes an in-memory xlsx with one sheet per entry.
func buildWorkbook(t *testing.T, sheets map[string][][]string) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName() failed: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("NewSheet() failed: %v", err)
			}
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName() failed: %v", err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow() failed: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() failed: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func newTestImportService(repo *stubRepository, hasHeaderRow bool) (ImportService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(nil)
	return NewImportService(repo, publisher, testLogger(), hasHeaderRow), publisher
}

func TestImportTeachers(t *testing.T) {
	repo := newStubRepository()
	svc, publisher := newTestImportService(repo, true)

	upload := buildWorkbook(t, map[string][][]string{
		"Staff": {
			importHeader,
			{"ANNA", "LARSSON", "anna@example.se", "40"},
			{"BO-ERIK", "NILSSON", "bo@example.se", "35"},
		},
	})

	report, err := svc.ImportTeachers(context.Background(), upload)
	if err != nil {
		t.Fatalf("ImportTeachers() failed: %v", err)
	}

	if len(report.Imported) != 2 {
		t.Fatalf("imported %d teachers, want 2", len(report.Imported))
	}
	if len(report.Rejected) != 0 {
		t.Fatalf("rejected %d rows, want 0: %v", len(report.Rejected), report.Rejected)
	}
	if report.Processed != 2 || report.Skipped != 0 {
		t.Errorf("processed/skipped = %d/%d, want 2/0", report.Processed, report.Skipped)
	}
	for _, teacher := range report.Imported {
		if teacher.ID == 0 {
			t.Error("imported teacher has no ID")
		}
		if teacher.Status != models.StatusInvited {
			t.Errorf("imported teacher status = %q, want %q", teacher.Status, models.StatusInvited)
		}
	}

	visible, err := repo.Teacher().ListVisible(context.Background())
	if err != nil {
		t.Fatalf("ListVisible() failed: %v", err)
	}
	if len(visible) != 2 {
		t.Errorf("store holds %d teachers, want 2", len(visible))
	}

	got := publisher.GetPublishedEvents()
	if len(got) != 1 || got[0].Type != events.TypeImportCompleted {
		t.Errorf("published %d events, want one %s", len(got), events.TypeImportCompleted)
	}
}

func TestImportTeachersWithoutHeaderRow(t *testing.T) {
	repo := newStubRepository()
	svc, _ := newTestImportService(repo, false)

	upload := buildWorkbook(t, map[string][][]string{
		"Staff": {
			{"ANNA", "LARSSON", "anna@example.se", "40"},
		},
	})

	report, err := svc.ImportTeachers(context.Background(), upload)
	if err != nil {
		t.Fatalf("ImportTeachers() failed: %v", err)
	}
	if len(report.Imported) != 1 {
		t.Fatalf("imported %d teachers, want 1", len(report.Imported))
	}
}

func TestImportTeachersRejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name       string
		row        []string
		wantReason string
	}{
		{
			name:       "lowercase first name",
			row:        []string{"Anna", "LARSSON", "anna@example.se", "40"},
			wantReason: "is not an approved first name",
		},
		{
			name:       "lowercase last name",
			row:        []string{"ANNA", "Larsson", "anna@example.se", "40"},
			wantReason: "is not an approved last name",
		},
		{
			name:       "malformed email",
			row:        []string{"ANNA", "LARSSON", "not-an-email", "40"},
			wantReason: "is not a valid email address",
		},
		{
			name:       "fractional work hours",
			row:        []string{"ANNA", "LARSSON", "anna@example.se", "37.5"},
			wantReason: "is not a whole number of work hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepository()
			svc, _ := newTestImportService(repo, true)

			upload := buildWorkbook(t, map[string][][]string{
				"Staff": {importHeader, tt.row},
			})

			report, err := svc.ImportTeachers(context.Background(), upload)
			if err != nil {
				t.Fatalf("ImportTeachers() failed: %v", err)
			}
			if len(report.Imported) != 0 {
				t.Fatalf("imported %d teachers, want 0", len(report.Imported))
			}
			if len(report.Rejected) != 1 {
				t.Fatalf("rejected %d rows, want 1", len(report.Rejected))
			}

			rejection := report.Rejected[0]
			if rejection.Sheet != "Staff" || rejection.Row != 2 {
				t.Errorf("rejection at %s row %d, want Staff row 2", rejection.Sheet, rejection.Row)
			}
			if !strings.Contains(rejection.Reason, tt.wantReason) {
				t.Errorf("rejection reason %q does not contain %q", rejection.Reason, tt.wantReason)
			}
		})
	}
}

// Bad rows never block the good ones in the same upload.
func TestImportTeachersMixedRows(t *testing.T) {
	repo := newStubRepository()
	svc, _ := newTestImportService(repo, true)

	upload := buildWorkbook(t, map[string][][]string{
		"Staff": {
			importHeader,
			{"ANNA", "LARSSON", "anna@example.se", "40"},
			{"bo", "NILSSON", "bo@example.se", "35"},
			{"CARL", "BERG", "carl@example.se", "20"},
		},
	})

	report, err := svc.ImportTeachers(context.Background(), upload)
	if err != nil {
		t.Fatalf("ImportTeachers() failed: %v", err)
	}
	if len(report.Imported) != 2 {
		t.Errorf("imported %d teachers, want 2", len(report.Imported))
	}
	if len(report.Rejected) != 1 {
		t.Errorf("rejected %d rows, want 1", len(report.Rejected))
	}
}

func TestImportTeachersSkipsIncompleteRows(t *testing.T) {
	repo := newStubRepository()
	svc, _ := newTestImportService(repo, true)

	upload := buildWorkbook(t, map[string][][]string{
		"Staff": {
			importHeader,
			{"ANNA", "LARSSON", "anna@example.se", "40"},
			{"BO", "", "bo@example.se", "35"},
			{"CARL"},
		},
	})

	report, err := svc.ImportTeachers(context.Background(), upload)
	if err != nil {
		t.Fatalf("ImportTeachers() failed: %v", err)
	}
	if len(report.Imported) != 1 {
		t.Errorf("imported %d teachers, want 1", len(report.Imported))
	}
	if len(report.Rejected) != 0 {
		t.Errorf("rejected %d rows, want 0; incomplete rows must be silent", len(report.Rejected))
	}
	if report.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", report.Skipped)
	}
}

func TestImportTeachersDuplicateWithinBatch(t *testing.T) {
	repo := newStubRepository()
	svc, _ := newTestImportService(repo, true)

	upload := buildWorkbook(t, map[string][][]string{
		"Staff": {
			importHeader,
			{"ANNA", "LARSSON", "anna@example.se", "40"},
			{"ANNIKA", "BERG", "anna@example.se", "35"},
		},
	})

	report, err := svc.ImportTeachers(context.Background(), upload)
	if err != nil {
		t.Fatalf("ImportTeachers() failed: %v", err)
	}
	if len(report.Imported) != 1 {
		t.Errorf("imported %d teachers, want 1", len(report.Imported))
	}
	if len(report.Rejected) != 1 || !strings.Contains(report.Rejected[0].Reason, "already registered") {
		t.Errorf("rejected = %v, want one already-registered rejection", report.Rejected)
	}
}

func TestImportTeachersDuplicateAgainstStore(t *testing.T) {
	repo := newStubRepository()
	if err := repo.Teacher().Create(context.Background(), &models.Teacher{
		FirstName: "Anna", LastName: "Larsson", Email: "anna@example.se", Status: models.StatusActive,
	}); err != nil {
		t.Fatalf("seed Create() failed: %v", err)
	}
	svc, _ := newTestImportService(repo, true)

	upload := buildWorkbook(t, map[string][][]string{
		"Staff": {
			importHeader,
			{"ANNA", "LARSSON", "anna@example.se", "40"},
		},
	})

	report, err := svc.ImportTeachers(context.Background(), upload)
	if err != nil {
		t.Fatalf("ImportTeachers() failed: %v", err)
	}
	if len(report.Imported) != 0 || len(report.Rejected) != 1 {
		t.Fatalf("imported/rejected = %d/%d, want 0/1", len(report.Imported), len(report.Rejected))
	}
}

func TestImportTeachersScansAllSheets(t *testing.T) {
	repo := newStubRepository()
	svc, _ := newTestImportService(repo, true)

	upload := buildWorkbook(t, map[string][][]string{
		"North": {
			importHeader,
			{"ANNA", "LARSSON", "anna@example.se", "40"},
		},
		"South": {
			importHeader,
			{"BO", "NILSSON", "bo@example.se", "35"},
		},
	})

	report, err := svc.ImportTeachers(context.Background(), upload)
	if err != nil {
		t.Fatalf("ImportTeachers() failed: %v", err)
	}
	if len(report.Imported) != 2 {
		t.Errorf("imported %d teachers, want 2 across both sheets", len(report.Imported))
	}
}

// A storage failure mid-batch rolls back every staged teacher.
func TestImportTeachersCommitIsAtomic(t *testing.T) {
	repo := newStubRepository()
	repo.teacher.failAfter = 2
	svc, _ := newTestImportService(repo, true)

	upload := buildWorkbook(t, map[string][][]string{
		"Staff": {
			importHeader,
			{"ANNA", "LARSSON", "anna@example.se", "40"},
			{"BO", "NILSSON", "bo@example.se", "35"},
		},
	})

	if _, err := svc.ImportTeachers(context.Background(), upload); err == nil {
		t.Fatal("ImportTeachers() succeeded, want transaction failure")
	}

	visible, err := repo.Teacher().ListVisible(context.Background())
	if err != nil {
		t.Fatalf("ListVisible() failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("store holds %d teachers after failed import, want 0", len(visible))
	}
}

func TestImportTeachersRejectsGarbageFile(t *testing.T) {
	svc, _ := newTestImportService(newStubRepository(), true)

	_, err := svc.ImportTeachers(context.Background(), bytes.NewReader([]byte("not a spreadsheet")))
	if !errors.Is(err, ErrInvalidFileFormat) {
		t.Fatalf("ImportTeachers() error = %v, want ErrInvalidFileFormat", err)
	}
}
