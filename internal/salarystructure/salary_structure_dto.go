package salarystructure

import "github.com/shopspring/decimal"

type BasicRequest struct {
	CalculationType string          `json:"calculation_type" binding:"required,oneof=fixed percentage"`
	Value           decimal.Decimal `json:"value"`
}

type ItemRequest struct {
	Code            string          `json:"code" binding:"required,max=50"`
	Name            string          `json:"name" binding:"max=150"`
	CalculationType string          `json:"calculation_type" binding:"required,oneof=fixed percentage"`
	Value           decimal.Decimal `json:"value"`
	CalculationBase string          `json:"calculation_base" binding:"max=50"`
}

type CreateSalaryStructureRequest struct {
	Name        string        `json:"name" binding:"required,max=150"`
	Description string        `json:"description" binding:"max=500"`
	IsDefault   bool          `json:"is_default"`
	Basic       *BasicRequest `json:"basic"`
	Earnings    []ItemRequest `json:"earnings" binding:"dive"`
	Deductions  []ItemRequest `json:"deductions" binding:"dive"`
}

// A nil Earnings list leaves earnings untouched; a non-nil list replaces
// every editable earning except BASIC. Deductions are always merged.
type UpdateSalaryStructureRequest struct {
	Name        *string       `json:"name" binding:"omitempty,max=150"`
	Description *string       `json:"description" binding:"omitempty,max=500"`
	IsDefault   *bool         `json:"is_default"`
	Basic       *BasicRequest `json:"basic"`
	Earnings    []ItemRequest `json:"earnings" binding:"omitempty,dive"`
	Deductions  []ItemRequest `json:"deductions" binding:"omitempty,dive"`
}

type ItemResponse struct {
	ID              string           `json:"id"`
	ComponentID     string           `json:"component_id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	ComponentType   string           `json:"component_type"`
	StatutoryType   *string          `json:"statutory_type"`
	CalculationType string           `json:"calculation_type"`
	Value           *decimal.Decimal `json:"value"`
	CalculationBase *string          `json:"calculation_base"`
	Order           int              `json:"order"`
	EditClass       string           `json:"edit_class"`
}

type SalaryStructureResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsDefault   bool           `json:"is_default"`
	IsActive    bool           `json:"is_active"`
	Items       []ItemResponse `json:"items"`
}
