package healthcard

type SubmitRequest struct {
	Name             string `json:"name" binding:"required"`
	Place            string `json:"place"`
	Hospital         string `json:"hospital"`
	BloodGroup       string `json:"blood_group"`
	Age              string `json:"age"`
	Medications      string `json:"medications"`
	Allergies        string `json:"allergies"`
	Chronic          string `json:"chronic"`
	Disability       string `json:"disability"`
	Vaccination      string `json:"vaccination"`
	Illnesses        string `json:"illnesses"`
	Hospitalizations string `json:"hospitalizations"`
	EmergencyContact string `json:"emergency_contact"`
	CheckupDate      string `json:"checkup_date"`
}

// UpdateRequest is a partial edit: only non-nil fields are applied. The
// card id is never editable; the biometric flag only changes when sent
// explicitly.
type UpdateRequest struct {
	Name                 *string `json:"name"`
	Place                *string `json:"place"`
	Hospital             *string `json:"hospital"`
	BloodGroup           *string `json:"blood_group"`
	Age                  *string `json:"age"`
	Medications          *string `json:"medications"`
	Allergies            *string `json:"allergies"`
	Chronic              *string `json:"chronic"`
	Disability           *string `json:"disability"`
	Vaccination          *string `json:"vaccination"`
	Illnesses            *string `json:"illnesses"`
	Hospitalizations     *string `json:"hospitalizations"`
	EmergencyContact     *string `json:"emergency_contact"`
	CheckupDate          *string `json:"checkup_date"`
	BiometricsRegistered *bool   `json:"biometrics_registered"`
}

type CardResponse struct {
	EmployeeID           string `json:"employee_id"`
	HealthCardID         string `json:"health_card_id,omitempty"`
	Registered           bool   `json:"registered"`
	Name                 string `json:"name"`
	Place                string `json:"place,omitempty"`
	Hospital             string `json:"hospital,omitempty"`
	BloodGroup           string `json:"blood_group,omitempty"`
	Age                  string `json:"age,omitempty"`
	Medications          string `json:"medications,omitempty"`
	Allergies            string `json:"allergies,omitempty"`
	Chronic              string `json:"chronic,omitempty"`
	Disability           string `json:"disability,omitempty"`
	Vaccination          string `json:"vaccination,omitempty"`
	Illnesses            string `json:"illnesses,omitempty"`
	Hospitalizations     string `json:"hospitalizations,omitempty"`
	EmergencyContact     string `json:"emergency_contact,omitempty"`
	CheckupDate          string `json:"checkup_date,omitempty"`
	NextAppointmentDate  string `json:"next_appointment_date,omitempty"`
	BiometricsRegistered bool   `json:"biometrics_registered"`
}

type WorkflowResponse struct {
	EmployeeID           string `json:"employee_id"`
	State                string `json:"state"`
	BiometricsRegistered bool   `json:"biometrics_registered"`
}
