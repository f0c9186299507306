package salarycomponent

type CreateSalaryComponentRequest struct {
	Code          string `json:"code" binding:"required,max=50"`
	Name          string `json:"name" binding:"required,max=150"`
	ComponentType string `json:"component_type" binding:"required,oneof=earning deduction"`
}

type UpdateSalaryComponentRequest struct {
	Name     string `json:"name" binding:"required,max=150"`
	IsActive *bool  `json:"is_active"`
}

type SalaryComponentResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	ComponentType string  `json:"component_type"`
	StatutoryType *string `json:"statutory_type"`
	IsActive      bool    `json:"is_active"`
}
