package employee

type EmployeeResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	AdminID        string `json:"admin_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	State          string `json:"state,omitempty"`
	IsActive       bool   `json:"is_active"`
}
