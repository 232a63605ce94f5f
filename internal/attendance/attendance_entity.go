package attendance

import (
	"time"

	"gorm.io/gorm"
)

// Attendance is one row per employee: running counts maintained by the
// company official, not a per-day ledger.
type Attendance struct {
	EmployeeID       string         `gorm:"column:employee_id;type:varchar(50);primaryKey"`
	CompanyID        string         `gorm:"column:company_id;type:varchar(50);not null;index"`
	TotalDays        int            `gorm:"column:total_days;not null;default:0"`
	Leaves           int            `gorm:"column:leaves;not null;default:0"`
	ContinuousLeaves int            `gorm:"column:continuous_leaves;not null;default:0"`
	Status           string         `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Attendance) TableName() string {
	return "attendances"
}
