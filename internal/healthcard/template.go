package healthcard

// defaultTemplate is the documented fallback card shown when a field (or a
// whole record) has not been stored yet. Field values match the demo
// template the product ships with.
var defaultTemplate = HealthRecord{
	Name:             "Ravi Kumar",
	BloodGroup:       "B+",
	Age:              "32",
	Medications:      "Paracetamol, Metformin",
	Allergies:        "Penicillin",
	Chronic:          "Diabetes, Hypertension",
	Disability:       "None",
	Vaccination:      "COVID-19 (2 doses), Tetanus",
	Illnesses:        "Dengue (2022)",
	Hospitalizations: "Appendectomy (2020)",
	EmergencyContact: "9876543210",
	Place:            "Delhi",
	Hospital:         "Apollo",
}

func fallback(stored, def string) string {
	if stored != "" {
		return stored
	}
	return def
}

// withTemplateDefaults layers the stored record over the default template
// field by field. The card id, dates and the biometric flag are never
// defaulted.
func withTemplateDefaults(rec HealthRecord) HealthRecord {
	rec.Name = fallback(rec.Name, defaultTemplate.Name)
	rec.Place = fallback(rec.Place, defaultTemplate.Place)
	rec.Hospital = fallback(rec.Hospital, defaultTemplate.Hospital)
	rec.BloodGroup = fallback(rec.BloodGroup, defaultTemplate.BloodGroup)
	rec.Age = fallback(rec.Age, defaultTemplate.Age)
	rec.Medications = fallback(rec.Medications, defaultTemplate.Medications)
	rec.Allergies = fallback(rec.Allergies, defaultTemplate.Allergies)
	rec.Chronic = fallback(rec.Chronic, defaultTemplate.Chronic)
	rec.Disability = fallback(rec.Disability, defaultTemplate.Disability)
	rec.Vaccination = fallback(rec.Vaccination, defaultTemplate.Vaccination)
	rec.Illnesses = fallback(rec.Illnesses, defaultTemplate.Illnesses)
	rec.Hospitalizations = fallback(rec.Hospitalizations, defaultTemplate.Hospitalizations)
	rec.EmergencyContact = fallback(rec.EmergencyContact, defaultTemplate.EmergencyContact)
	return rec
}
