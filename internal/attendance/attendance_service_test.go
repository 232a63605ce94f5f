package attendance

import (
	"context"
	"database/sql"
	"testing"

	"github.com/RonikAgarwal/Swasthi/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows map[string]*Attendance
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]*Attendance{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	cp := *a
	f.rows[a.EmployeeID] = &cp
	return nil
}
func (f *fakeRepo) FindByEmployeeID(ctx context.Context, companyID, employeeID string) (*Attendance, error) {
	row, ok := f.rows[employeeID]
	if !ok || row.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Attendance, error) {
	var rows []Attendance
	for _, row := range f.rows {
		if row.CompanyID == companyID {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error {
	cp := *a
	f.rows[a.EmployeeID] = &cp
	return nil
}
func (f *fakeRepo) Delete(ctx context.Context, companyID, employeeID string) error {
	delete(f.rows, employeeID)
	return nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error              { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error    { return nil }

func seedRow(repo *fakeRepo, companyID, employeeID string, continuous int) {
	repo.rows[employeeID] = &Attendance{
		EmployeeID:       employeeID,
		CompanyID:        companyID,
		Status:           StatusPresent,
		ContinuousLeaves: continuous,
	}
}

func TestService_UpdateField_NumericAndStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	seedRow(repo, "C1", "EMP001", 0)
	svc := NewService(db, repo)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.UpdateField(ctx, "C1", "EMP001", UpdateFieldRequest{Field: FieldContinuousLeaves, Value: "3"})
	assert.NoError(t, err)
	assert.Equal(t, 3, resp.ContinuousLeaves)
	assert.Equal(t, string(WarningNone), resp.WarningLevel)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.UpdateField(ctx, "C1", "EMP001", UpdateFieldRequest{Field: FieldStatus, Value: "On Leave"})
	assert.NoError(t, err)
	assert.Equal(t, StatusOnLeave, resp.Status)
	assert.Equal(t, string(WarningMild), resp.WarningLevel)
	assert.Equal(t, ToneCaution, resp.Tone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateField_RejectsNegative(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	seedRow(repo, "C1", "EMP001", 2)
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.UpdateField(context.Background(), "C1", "EMP001", UpdateFieldRequest{Field: FieldLeaves, Value: "-1"})
	assert.Error(t, err)
	assert.Equal(t, 2, repo.rows["EMP001"].ContinuousLeaves)
	assert.Equal(t, 0, repo.rows["EMP001"].Leaves)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateField_RejectsUnknownField(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	seedRow(repo, "C1", "EMP001", 0)
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.UpdateField(context.Background(), "C1", "EMP001", UpdateFieldRequest{Field: "holidays", Value: "1"})
	assert.Error(t, err)
}

func TestService_UpdateField_WorkerCheckRaisedOnCrossingOnly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	seedRow(repo, "C1", "EMP002", 5)
	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, outbox)
	ctx := context.Background()

	// 5 -> 6 crosses the limit: one event
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.UpdateField(ctx, "C1", "EMP002", UpdateFieldRequest{Field: FieldContinuousLeaves, Value: "6"})
	assert.NoError(t, err)
	assert.Equal(t, string(WarningSevere), resp.WarningLevel)
	assert.Equal(t, ToneCritical, resp.Tone)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "worker_check_requested", outbox.created[0].EventType)

	// 6 -> 7 stays above the limit: no new event
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.UpdateField(ctx, "C1", "EMP002", UpdateFieldRequest{Field: FieldContinuousLeaves, Value: "7"})
	assert.NoError(t, err)
	assert.Len(t, outbox.created, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateField_StrictLeavesPolicy(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	seedRow(repo, "C1", "EMP003", 0)
	repo.rows["EMP003"].Leaves = 2
	svc := NewStrictService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.UpdateField(context.Background(), "C1", "EMP003", UpdateFieldRequest{Field: FieldContinuousLeaves, Value: "4"})
	assert.Error(t, err)

	// Default policy leaves the relationship unconstrained
	lax := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := lax.UpdateField(context.Background(), "C1", "EMP003", UpdateFieldRequest{Field: FieldContinuousLeaves, Value: "4"})
	assert.NoError(t, err)
	assert.Equal(t, 4, resp.ContinuousLeaves)
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

func TestService_Get_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo())
	_, err := svc.Get(context.Background(), "C1", "EMP999")
	assert.Error(t, err)
}
