package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceEntry is one row of a monthly attendance sheet. EmployeeKey is
// either the employee id or the employee number as submitted, and
// PayableDays keeps the raw text so generation can report bad values per
// row.
type AttendanceEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	AdminID        uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_attendance_entry"`
	EmployeeKey    string    `gorm:"uniqueIndex:uq_attendance_entry"`
	Month          int       `gorm:"uniqueIndex:uq_attendance_entry"`
	Year           int       `gorm:"uniqueIndex:uq_attendance_entry"`
	PayableDays    string
	CreatedAt      time.Time
}

func (AttendanceEntry) TableName() string {
	return "attendance_entries"
}
