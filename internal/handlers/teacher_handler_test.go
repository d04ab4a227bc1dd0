package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/services"
	"github.com/skolaplan/admin-service/internal/utils"
)

// stubTeacherService returns canned results per method and records the
// filters the handler built.
type stubTeacherService struct {
	listResp   *services.TeacherListResponse
	getResp    *models.Teacher
	createResp *models.Teacher
	err        error

	gotFilters services.ListTeachersFilters
}

func (s *stubTeacherService) List(_ context.Context, filters services.ListTeachersFilters) (*services.TeacherListResponse, error) {
	s.gotFilters = filters
	return s.listResp, s.err
}

func (s *stubTeacherService) GetByID(context.Context, uint) (*models.Teacher, error) {
	return s.getResp, s.err
}

func (s *stubTeacherService) Create(context.Context, *services.CreateTeacherRequest) (*models.Teacher, error) {
	return s.createResp, s.err
}

func (s *stubTeacherService) Update(context.Context, uint, *services.UpdateTeacherRequest) (*models.Teacher, error) {
	return s.getResp, s.err
}

func (s *stubTeacherService) Deactivate(context.Context, uint) error {
	return s.err
}

func newTeacherTestRouter(svc services.TeacherService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))
	handler := NewTeacherHandler(svc, logger)

	router := gin.New()
	router.GET("/teachers", handler.ListTeachers)
	router.GET("/teachers/:id", handler.GetTeacher)
	router.POST("/teachers", handler.CreateTeacher)
	router.PUT("/teachers/:id", handler.UpdateTeacher)
	router.POST("/teachers/:id/deactivate", handler.DeactivateTeacher)
	return router
}

func TestTeacherHandlerList(t *testing.T) {
	svc := &stubTeacherService{
		listResp: &services.TeacherListResponse{
			Teachers: []*models.Teacher{
				{ID: 1, FirstName: "Anna", LastName: "Larsson", Email: "anna@example.se", Status: models.StatusActive},
			},
			Total: 1,
		},
	}
	router := newTeacherTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teachers", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /teachers status = %d, want 200", w.Code)
	}
	var resp services.TeacherListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Total != 1 || len(resp.Teachers) != 1 {
		t.Errorf("response = %+v, want one teacher", resp)
	}
}

func TestTeacherHandlerListQueryParams(t *testing.T) {
	svc := &stubTeacherService{listResp: &services.TeacherListResponse{}}
	router := newTeacherTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teachers?q=anna&status=deactivated&page=2&size=10", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /teachers status = %d, want 200", w.Code)
	}
	got := svc.gotFilters
	if got.Query != "anna" {
		t.Errorf("filters.Query = %q, want %q", got.Query, "anna")
	}
	if got.Status == nil || *got.Status != models.StatusDeactivated {
		t.Errorf("filters.Status = %v, want %q", got.Status, models.StatusDeactivated)
	}
	if got.Page != 2 || got.Size != 10 {
		t.Errorf("filters page/size = %d/%d, want 2/10", got.Page, got.Size)
	}
}

func TestTeacherHandlerListBadPageFallsBack(t *testing.T) {
	svc := &stubTeacherService{listResp: &services.TeacherListResponse{}}
	router := newTeacherTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teachers?page=abc&size=-5", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /teachers status = %d, want 200", w.Code)
	}
	if svc.gotFilters.Page != 1 || svc.gotFilters.Size != 0 {
		t.Errorf("filters page/size = %d/%d, want defaults 1/0",
			svc.gotFilters.Page, svc.gotFilters.Size)
	}
}

func TestTeacherHandlerCreate(t *testing.T) {
	svc := &stubTeacherService{
		createResp: &models.Teacher{ID: 1, FirstName: "Anna", LastName: "Larsson", Email: "anna@example.se", Status: models.StatusInvited},
	}
	router := newTeacherTestRouter(svc)

	body := bytes.NewBufferString(`{"first_name":"Anna","last_name":"Larsson","email":"anna@example.se"}`)
	req := httptest.NewRequest(http.MethodPost, "/teachers", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("POST /teachers status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestTeacherHandlerCreateBadPayload(t *testing.T) {
	router := newTeacherTestRouter(&stubTeacherService{})

	req := httptest.NewRequest(http.MethodPost, "/teachers", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /teachers status = %d, want 400", w.Code)
	}
}

func TestTeacherHandlerServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"duplicate email", services.ErrDuplicateEmail, http.StatusConflict},
		{"validation", services.ErrValidationFailed, http.StatusBadRequest},
		{"unexpected", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTeacherTestRouter(&stubTeacherService{err: tt.err})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teachers/1", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("GET /teachers/1 status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestTeacherHandlerInvalidID(t *testing.T) {
	router := newTeacherTestRouter(&stubTeacherService{})

	for _, path := range []string{"/teachers/abc", "/teachers/0", "/teachers/-1"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, w.Code)
		}
	}
}

func TestTeacherHandlerDeactivate(t *testing.T) {
	router := newTeacherTestRouter(&stubTeacherService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/teachers/1/deactivate", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("POST /teachers/1/deactivate status = %d, want 200", w.Code)
	}
}
