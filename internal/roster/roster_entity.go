package roster

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is a company official's roster row. Membership is independent of
// health-card state: removing an entry never touches the health record.
type Entry struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  string         `gorm:"column:company_id;type:varchar(50);not null;uniqueIndex:uq_roster_company_employee"`
	EmployeeID string         `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_roster_company_employee"`
	Name       string         `gorm:"column:name;type:varchar(150);not null"`
	Place      string         `gorm:"column:place;type:varchar(150)"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Entry) TableName() string {
	return "roster_entries"
}
