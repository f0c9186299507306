package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the slice of the employee directory the payroll engine reads.
// Lifecycle writes belong to the directory service.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_employee_number"`
	AdminID        uuid.UUID `gorm:"type:uuid;index"`
	EmployeeNumber string    `gorm:"uniqueIndex:uq_employee_number"`
	FullName       string
	State          string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Employee) TableName() string {
	return "employees"
}
