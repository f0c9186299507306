package salarystructure

import (
	"time"

	"go-hrms/internal/salarycomponent"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CalcFixed      = "fixed"
	CalcPercentage = "percentage"
	CalcAuto       = "auto"
)

type SalaryStructure struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_salary_structure_name,where:is_active = true"`
	Name           string    `gorm:"uniqueIndex:uq_salary_structure_name,where:is_active = true"`
	Description    string
	IsDefault      bool
	IsActive       bool
	Items          []SalaryStructureItem `gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

type SalaryStructureItem struct {
	ID                uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	StructureID       uuid.UUID                       `gorm:"type:uuid;uniqueIndex:uq_structure_component"`
	ComponentID       uuid.UUID                       `gorm:"type:uuid;uniqueIndex:uq_structure_component"`
	Component         salarycomponent.SalaryComponent `gorm:"foreignKey:ComponentID;constraint:OnDelete:RESTRICT"`
	CalculationType   string
	Value             *decimal.Decimal `gorm:"type:numeric(14,2)"`
	CalculationBaseID *uuid.UUID       `gorm:"type:uuid"`
	Order             int              `gorm:"column:sort_order"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (SalaryStructureItem) TableName() string {
	return "salary_structure_items"
}

// EditClass tells who owns an item's value.
type EditClass int

const (
	// Editable items are fixed or percentage rules set by the author.
	Editable EditClass = iota
	// Locked items are statutory and computed from payroll settings.
	Locked
	// SystemManaged items absorb the gross remainder.
	SystemManaged
)

func (c EditClass) String() string {
	switch c {
	case Locked:
		return "locked"
	case SystemManaged:
		return "system_managed"
	default:
		return "editable"
	}
}

func (i SalaryStructureItem) EditClass() EditClass {
	switch {
	case i.Component.IsStatutory() || i.CalculationType == CalcAuto:
		return Locked
	case i.Component.ComponentType == salarycomponent.TypeEarning && i.Component.IsSpecialAllowance():
		return SystemManaged
	default:
		return Editable
	}
}

func (i SalaryStructureItem) IsEarning() bool {
	return i.Component.ComponentType == salarycomponent.TypeEarning
}

func (i SalaryStructureItem) ValueOrZero() decimal.Decimal {
	if i.Value == nil {
		return decimal.Zero
	}
	return *i.Value
}
