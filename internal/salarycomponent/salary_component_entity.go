package salarycomponent

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeEarning   = "earning"
	TypeDeduction = "deduction"
)

const (
	StatutoryPF       = "PF"
	StatutoryESI      = "ESI"
	StatutoryPT       = "PT"
	StatutoryGratuity = "GRATUITY"
)

const (
	CodeBasic            = "BASIC"
	CodeSpecialAllowance = "SPECIAL_ALLOWANCE"
)

type SalaryComponent struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_salary_component_code"`
	Code           string    `gorm:"uniqueIndex:uq_salary_component_code"`
	Name           string
	ComponentType  string
	StatutoryType  *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}

func (c SalaryComponent) IsStatutory() bool {
	return c.StatutoryType != nil && *c.StatutoryType != ""
}

func (c SalaryComponent) Statutory() string {
	if c.StatutoryType == nil {
		return ""
	}
	return *c.StatutoryType
}

// Spec describes a component to resolve by code, creating it when missing.
type Spec struct {
	Code          string
	Name          string
	ComponentType string
	StatutoryType *string
}

// StatutorySchemes lists the schemes in the order their deductions are provisioned.
var StatutorySchemes = []string{StatutoryPF, StatutoryESI, StatutoryPT, StatutoryGratuity}

var statutoryNames = map[string]string{
	StatutoryPF:       "Provident Fund (Employee)",
	StatutoryESI:      "Employee State Insurance (Employee)",
	StatutoryPT:       "Professional Tax",
	StatutoryGratuity: "Gratuity (Employee)",
}

// StatutorySpec is the employee-side deduction component for a scheme.
func StatutorySpec(scheme string) Spec {
	s := scheme
	return Spec{
		Code:          scheme + SuffixEmployee,
		Name:          statutoryNames[scheme],
		ComponentType: TypeDeduction,
		StatutoryType: &s,
	}
}

func BasicSpec() Spec {
	return Spec{Code: CodeBasic, Name: "Basic Salary", ComponentType: TypeEarning}
}

func SpecialAllowanceSpec() Spec {
	return Spec{Code: CodeSpecialAllowance, Name: "Special Allowance", ComponentType: TypeEarning}
}
