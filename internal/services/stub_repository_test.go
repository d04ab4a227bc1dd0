package services

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/repositories"
	"github.com/skolaplan/admin-service/internal/utils"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTeacherRepo struct {
	mu      sync.Mutex
	nextID  uint
	byID    map[uint]*models.Teacher
	byEmail map[uint]string // id -> email, for uniqueness bookkeeping

	createErr error // if set, Create returns this error
	failAfter int   // fail on the Nth create (1-based, 0 disables)
	creates   int
}

func newStubTeacherRepo() *stubTeacherRepo {
	return &stubTeacherRepo{
		nextID:  1,
		byID:    make(map[uint]*models.Teacher),
		byEmail: make(map[uint]string),
	}
}

func (r *stubTeacherRepo) Create(_ context.Context, teacher *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if r.failAfter > 0 && r.creates >= r.failAfter {
		return repositories.ErrDuplicate
	}
	for _, email := range r.byEmail {
		if email == teacher.Email {
			return repositories.ErrDuplicate
		}
	}

	teacher.ID = r.nextID
	r.nextID++
	clone := *teacher
	r.byID[teacher.ID] = &clone
	r.byEmail[teacher.ID] = teacher.Email
	return nil
}

func (r *stubTeacherRepo) GetByID(_ context.Context, id uint) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTeacherRepo) Update(_ context.Context, teacher *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[teacher.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, email := range r.byEmail {
		if id != teacher.ID && email == teacher.Email {
			return repositories.ErrDuplicate
		}
	}
	clone := *teacher
	r.byID[teacher.ID] = &clone
	r.byEmail[teacher.ID] = teacher.Email
	return nil
}

func (r *stubTeacherRepo) ListVisible(_ context.Context) ([]*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Teacher
	for id := uint(1); id < r.nextID; id++ {
		t, ok := r.byID[id]
		if !ok || !t.IsListed() {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

// List applies the same filters the real Postgres repo would use.
func (r *stubTeacherRepo) List(_ context.Context, filters repositories.TeacherFilters) ([]*models.Teacher, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(filters.Query)
	var matched []*models.Teacher
	for id := uint(1); id < r.nextID; id++ {
		t, ok := r.byID[id]
		if !ok {
			continue
		}
		if filters.Status != nil {
			if t.Status != *filters.Status {
				continue
			}
		} else if filters.VisibleOnly && !t.IsListed() {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.FirstName), q) &&
			!strings.Contains(strings.ToLower(t.LastName), q) &&
			!strings.Contains(strings.ToLower(t.Email), q) {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filters.Offset:]
		}
	}
	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (r *stubTeacherRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.byEmail {
		if e == email {
			return true, nil
		}
	}
	return false, nil
}

type stubWorkPeriodRepo struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.WorkPeriod
}

func newStubWorkPeriodRepo() *stubWorkPeriodRepo {
	return &stubWorkPeriodRepo{
		nextID: 1,
		byID:   make(map[uint]*models.WorkPeriod),
	}
}

func (r *stubWorkPeriodRepo) Create(_ context.Context, period *models.WorkPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	period.ID = r.nextID
	r.nextID++
	clone := *period
	r.byID[period.ID] = &clone
	return nil
}

func (r *stubWorkPeriodRepo) GetByID(_ context.Context, id uint) (*models.WorkPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubWorkPeriodRepo) Update(_ context.Context, period *models.WorkPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[period.ID]; !ok {
		return repositories.ErrNotFound
	}
	clone := *period
	r.byID[period.ID] = &clone
	return nil
}

func (r *stubWorkPeriodRepo) List(_ context.Context) ([]*models.WorkPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.WorkPeriod
	for id := uint(1); id < r.nextID; id++ {
		if p, ok := r.byID[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubRepository aggregates the stubs behind the Repository interface.
// WithTransaction runs the callback against a snapshot and only merges the
// writes back on success, mirroring commit/rollback.
type stubRepository struct {
	teacher    *stubTeacherRepo
	workPeriod *stubWorkPeriodRepo
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		teacher:    newStubTeacherRepo(),
		workPeriod: newStubWorkPeriodRepo(),
	}
}

func (r *stubRepository) Teacher() repositories.TeacherRepository       { return r.teacher }
func (r *stubRepository) WorkPeriod() repositories.WorkPeriodRepository { return r.workPeriod }

func (r *stubRepository) WithTransaction(_ context.Context, fn func(repositories.Repository) error) error {
	tx := &stubRepository{
		teacher:    r.teacher.snapshot(),
		workPeriod: r.workPeriod,
	}
	if err := fn(tx); err != nil {
		return err
	}
	r.teacher.replace(tx.teacher)
	return nil
}

func (r *stubRepository) Ping(context.Context) error { return nil }
func (r *stubRepository) Close() error               { return nil }

func (r *stubTeacherRepo) snapshot() *stubTeacherRepo {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := newStubTeacherRepo()
	snap.nextID = r.nextID
	snap.createErr = r.createErr
	snap.failAfter = r.failAfter
	snap.creates = r.creates
	for id, t := range r.byID {
		clone := *t
		snap.byID[id] = &clone
		snap.byEmail[id] = t.Email
	}
	return snap
}

func (r *stubTeacherRepo) replace(src *stubTeacherRepo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID = src.nextID
	r.creates = src.creates
	r.byID = src.byID
	r.byEmail = src.byEmail
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))
}
