package responses

type PatientSearch struct {
	Count    int              `json:"count"`
	Patients []PatientSummary `json:"patients"`
}

type PatientSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	DOB    string `json:"dob"`
	Gender string `json:"gender"`
}
