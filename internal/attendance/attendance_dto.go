package attendance

const (
	FieldTotalDays        = "totalDays"
	FieldLeaves           = "leaves"
	FieldContinuousLeaves = "continuousLeaves"
	FieldStatus           = "status"
)

type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type AttendanceResponse struct {
	EmployeeID       string `json:"employee_id"`
	CompanyID        string `json:"company_id"`
	TotalDays        int    `json:"total_days"`
	Leaves           int    `json:"leaves"`
	ContinuousLeaves int    `json:"continuous_leaves"`
	Status           string `json:"status"`
	WarningLevel     string `json:"warning_level"`
	Tone             string `json:"tone"`
}
