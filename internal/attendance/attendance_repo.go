package attendance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeID(ctx context.Context, companyID, employeeID string) (*Attendance, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, companyID, employeeID string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// orm returns the query runner, bound to the caller's transaction when one
// was set via WithTx.
func (r *repository) orm(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.orm(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeID(ctx context.Context, companyID, employeeID string) (*Attendance, error) {
	var a Attendance
	err := r.orm(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.orm(ctx).
		Where("company_id = ?", companyID).
		Order("employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.orm(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, companyID, employeeID string) error {
	return r.orm(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Delete(&Attendance{}).Error
}
