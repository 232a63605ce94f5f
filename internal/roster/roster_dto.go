package roster

type CreateEntryRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Place      string `json:"place"`
}

type UpdateEntryRequest struct {
	Name  string `json:"name" binding:"required"`
	Place string `json:"place"`
}

type EntryResponse struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Place        string `json:"place,omitempty"`
	HealthCardID string `json:"health_card_id,omitempty"`
	Status       string `json:"status"`
}
