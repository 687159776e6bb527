package dto

// PaginationRequest page/limit query parameters
type PaginationRequest struct {
	Page  int `form:"page"  binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// GetPage page number, default 1
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetLimit page size, default 10
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return 10
	}
	return p.Limit
}

// Offset rows to skip
func (p *PaginationRequest) Offset() int {
	return (p.GetPage() - 1) * p.GetLimit()
}

// DateRangeRequest inclusive YYYY-MM-DD bounds
type DateRangeRequest struct {
	StartDate string `form:"start_date" json:"start_date" binding:"required,date"`
	EndDate   string `form:"end_date"   json:"end_date"   binding:"required,date"`
}
