package roster

import (
	"context"
	"database/sql"
	"testing"

	"github.com/RonikAgarwal/Swasthi/internal/attendance"
	"github.com/RonikAgarwal/Swasthi/internal/healthcard"
	rostererrors "github.com/RonikAgarwal/Swasthi/internal/roster/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRosterRepo struct {
	entries map[string]*Entry
}

func newFakeRosterRepo() *fakeRosterRepo {
	return &fakeRosterRepo{entries: map[string]*Entry{}}
}

func (f *fakeRosterRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRosterRepo) Create(ctx context.Context, e *Entry) error {
	cp := *e
	f.entries[e.EmployeeID] = &cp
	return nil
}
func (f *fakeRosterRepo) FindByEmployeeID(ctx context.Context, companyID, employeeID string) (*Entry, error) {
	e, ok := f.entries[employeeID]
	if !ok || e.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}
func (f *fakeRosterRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Entry, error) {
	var rows []Entry
	for _, e := range f.entries {
		if e.CompanyID == companyID {
			rows = append(rows, *e)
		}
	}
	return rows, nil
}
func (f *fakeRosterRepo) Update(ctx context.Context, e *Entry) error {
	cp := *e
	f.entries[e.EmployeeID] = &cp
	return nil
}
func (f *fakeRosterRepo) Delete(ctx context.Context, companyID, employeeID string) error {
	delete(f.entries, employeeID)
	return nil
}

type fakeAttendanceRepo struct {
	rows map[string]*attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: map[string]*attendance.Attendance{}}
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	cp := *a
	f.rows[a.EmployeeID] = &cp
	return nil
}
func (f *fakeAttendanceRepo) FindByEmployeeID(ctx context.Context, companyID, employeeID string) (*attendance.Attendance, error) {
	a, ok := f.rows[employeeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}
func (f *fakeAttendanceRepo) FindAllByCompany(ctx context.Context, companyID string) ([]attendance.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	cp := *a
	f.rows[a.EmployeeID] = &cp
	return nil
}
func (f *fakeAttendanceRepo) Delete(ctx context.Context, companyID, employeeID string) error {
	delete(f.rows, employeeID)
	return nil
}

type fakeCardRepo struct {
	cardIDs map[string]string
}

func (f *fakeCardRepo) WithTx(tx *sql.Tx) healthcard.Repository { return f }
func (f *fakeCardRepo) Create(ctx context.Context, rec *healthcard.HealthRecord) error {
	return nil
}
func (f *fakeCardRepo) Save(ctx context.Context, rec *healthcard.HealthRecord) error { return nil }
func (f *fakeCardRepo) FindByEmployeeID(ctx context.Context, employeeID string) (*healthcard.HealthRecord, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCardRepo) FindByCardID(ctx context.Context, cardID string) (*healthcard.HealthRecord, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCardRepo) ExistsByCardID(ctx context.Context, cardID string) (bool, error) {
	return false, nil
}
func (f *fakeCardRepo) FindAll(ctx context.Context) ([]healthcard.HealthRecord, error) {
	return nil, nil
}
func (f *fakeCardRepo) FindCardIDs(ctx context.Context, employeeIDs []string) (map[string]string, error) {
	res := map[string]string{}
	for _, id := range employeeIDs {
		if cardID, ok := f.cardIDs[id]; ok {
			res[id] = cardID
		}
	}
	return res, nil
}
func (f *fakeCardRepo) Delete(ctx context.Context, employeeID string) error { return nil }

func TestService_CreateSeedsAttendanceRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRosterRepo()
	attRepo := newFakeAttendanceRepo()
	svc := NewService(db, repo, attRepo, &fakeCardRepo{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), "CMP001", CreateEntryRequest{
		EmployeeID: "EMP001",
		Name:       "Test User",
		Place:      "Pune",
	})
	assert.NoError(t, err)
	assert.Equal(t, "EMP001", resp.EmployeeID)
	assert.Equal(t, "Unregistered", resp.Status)

	row, err := attRepo.FindByEmployeeID(context.Background(), "CMP001", "EMP001")
	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, row.Status)
	assert.Zero(t, row.TotalDays)
	assert.Zero(t, row.ContinuousLeaves)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CreateRequiresCompany(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRosterRepo(), newFakeAttendanceRepo(), &fakeCardRepo{})

	_, err := svc.Create(context.Background(), "", CreateEntryRequest{EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, rostererrors.ErrMissingCompany)
}

func TestService_GetAllDerivesRegistrationBadge(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRosterRepo()
	repo.entries["EMP001"] = &Entry{CompanyID: "CMP001", EmployeeID: "EMP001", Name: "Registered Worker"}
	repo.entries["EMP002"] = &Entry{CompanyID: "CMP001", EmployeeID: "EMP002", Name: "New Worker"}

	cards := &fakeCardRepo{cardIDs: map[string]string{"EMP001": "SW123456"}}
	svc := NewService(db, repo, newFakeAttendanceRepo(), cards)

	entries, err := svc.GetAll(context.Background(), "CMP001")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	byID := map[string]EntryResponse{}
	for _, e := range entries {
		byID[e.EmployeeID] = e
	}
	assert.Equal(t, "Registered", byID["EMP001"].Status)
	assert.Equal(t, "SW123456", byID["EMP001"].HealthCardID)
	assert.Equal(t, "Unregistered", byID["EMP002"].Status)
	assert.Empty(t, byID["EMP002"].HealthCardID)
}

func TestRepository_WithTxRunsOnTransaction(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	bound := NewRepository(gormDB).WithTx(tx).(*repository)
	assert.Same(t, tx, bound.orm(context.Background()).Statement.ConnPool)

	plain := NewRepository(gormDB).(*repository)
	assert.NotSame(t, tx, plain.orm(context.Background()).Statement.ConnPool)
}

func TestService_DeleteRemovesAttendanceButKeepsHealthRecord(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRosterRepo()
	repo.entries["EMP001"] = &Entry{CompanyID: "CMP001", EmployeeID: "EMP001"}
	attRepo := newFakeAttendanceRepo()
	attRepo.rows["EMP001"] = &attendance.Attendance{EmployeeID: "EMP001", CompanyID: "CMP001"}

	svc := NewService(db, repo, attRepo, &fakeCardRepo{cardIDs: map[string]string{"EMP001": "SW123456"}})

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), "CMP001", "EMP001")
	assert.NoError(t, err)

	assert.Empty(t, repo.entries)
	assert.Empty(t, attRepo.rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
