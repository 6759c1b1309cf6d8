package requests

type PatientSearch struct {
	Given     string
	Family    string
	Birthdate string
}
