package dto

// ProjectListRequest query of GET /projects
type ProjectListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// ProjectResponse project on the wire
type ProjectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}
