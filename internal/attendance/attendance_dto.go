package attendance

type EntryInput struct {
	EmployeeKey string `json:"employee" binding:"required"`
	PayableDays string `json:"payable_days"`
}

type ImportRequest struct {
	Month   int          `json:"month" binding:"required,min=1,max=12"`
	Year    int          `json:"year" binding:"required,min=2000,max=2100"`
	Entries []EntryInput `json:"entries" binding:"required,min=1,dive"`
}

type PeriodQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

type ImportResponse struct {
	Month     int `json:"month"`
	Year      int `json:"year"`
	TotalDays int `json:"total_days"`
	Imported  int `json:"imported"`
}

type SheetResponse struct {
	Month     int          `json:"month"`
	Year      int          `json:"year"`
	TotalDays int          `json:"total_days"`
	Entries   []EntryInput `json:"entries"`
}
