package healthcard

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=healthcard_repo.go -destination=mock/healthcard_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *HealthRecord) error
	Save(ctx context.Context, rec *HealthRecord) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*HealthRecord, error)
	FindByCardID(ctx context.Context, cardID string) (*HealthRecord, error)
	ExistsByCardID(ctx context.Context, cardID string) (bool, error)
	FindAll(ctx context.Context) ([]HealthRecord, error)
	FindCardIDs(ctx context.Context, employeeIDs []string) (map[string]string, error)
	Delete(ctx context.Context, employeeID string) error
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

func (r *repository) Create(ctx context.Context, rec *HealthRecord) error {
	return r.orm(ctx).Create(rec).Error
}

func (r *repository) Save(ctx context.Context, rec *HealthRecord) error {
	return r.orm(ctx).Save(rec).Error
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*HealthRecord, error) {
	var rec HealthRecord
	err := r.orm(ctx).
		Where("employee_id = ?", employeeID).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindByCardID(ctx context.Context, cardID string) (*HealthRecord, error) {
	var rec HealthRecord
	err := r.orm(ctx).
		Where("health_card_id = ?", cardID).
		First(&rec).Error
	return &rec, err
}

func (r *repository) ExistsByCardID(ctx context.Context, cardID string) (bool, error) {
	_, err := r.FindByCardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *repository) FindAll(ctx context.Context) ([]HealthRecord, error) {
	var rows []HealthRecord
	err := r.orm(ctx).
		Order("created_at ASC, employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindCardIDs(ctx context.Context, employeeIDs []string) (map[string]string, error) {
	if len(employeeIDs) == 0 {
		return map[string]string{}, nil
	}

	var rows []HealthRecord
	err := r.orm(ctx).
		Select("employee_id", "health_card_id").
		Where("employee_id IN ?", employeeIDs).
		Where("health_card_id IS NOT NULL").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	cardIDs := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.HealthCardID != nil {
			cardIDs[row.EmployeeID] = *row.HealthCardID
		}
	}
	return cardIDs, nil
}

func (r *repository) Delete(ctx context.Context, employeeID string) error {
	return r.orm(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&HealthRecord{}).Error
}
