package healthcard

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthRecord is one employee's digital health card entry. EmployeeID is
// the company-assigned key; HealthCardID stays NULL until registration
// submission succeeds.
type HealthRecord struct {
	ID                   uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID           string         `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_health_record_employee"`
	HealthCardID         *string        `gorm:"column:health_card_id;type:varchar(12);uniqueIndex:uq_health_card_id"`
	Name                 string         `gorm:"column:name;type:varchar(150);not null"`
	Place                string         `gorm:"column:place;type:varchar(150)"`
	Hospital             string         `gorm:"column:hospital;type:varchar(150)"`
	BloodGroup           string         `gorm:"column:blood_group;type:varchar(10)"`
	Age                  string         `gorm:"column:age;type:varchar(10)"`
	Medications          string         `gorm:"column:medications;type:text"`
	Allergies            string         `gorm:"column:allergies;type:text"`
	Chronic              string         `gorm:"column:chronic;type:text"`
	Disability           string         `gorm:"column:disability;type:text"`
	Vaccination          string         `gorm:"column:vaccination;type:text"`
	Illnesses            string         `gorm:"column:illnesses;type:text"`
	Hospitalizations     string         `gorm:"column:hospitalizations;type:text"`
	EmergencyContact     string         `gorm:"column:emergency_contact;type:varchar(50)"`
	CheckupDate          *time.Time     `gorm:"column:checkup_date;type:date"`
	NextAppointmentDate  *time.Time     `gorm:"column:next_appointment_date;type:date"`
	BiometricsRegistered bool           `gorm:"column:biometrics_registered;not null;default:false"`
	CreatedAt            time.Time      `gorm:"column:created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (HealthRecord) TableName() string {
	return "health_records"
}
