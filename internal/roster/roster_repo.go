package roster

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=roster_repo.go -destination=mock/roster_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Entry) error
	FindByEmployeeID(ctx context.Context, companyID, employeeID string) (*Entry, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Entry, error)
	Update(ctx context.Context, e *Entry) error
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

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.orm(ctx).Create(e).Error
}

func (r *repository) FindByEmployeeID(ctx context.Context, companyID, employeeID string) (*Entry, error) {
	var e Entry
	err := r.orm(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		First(&e).Error
	return &e, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Entry, error) {
	var rows []Entry
	err := r.orm(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC, employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *Entry) error {
	return r.orm(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, companyID, employeeID string) error {
	return r.orm(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Delete(&Entry{}).Error
}
