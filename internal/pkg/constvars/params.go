package constvars

const (
	URLParamCategory  = "category"
	URLParamPatientID = "patient_id"
	URLParamResource  = "resource"
	URLParamID        = "id"
)

const (
	URLQueryParamText      = "text"
	URLQueryParamDomain    = "domain"
	URLQueryParamGiven     = "given"
	URLQueryParamFamily    = "family"
	URLQueryParamBirthdate = "birthdate"
	URLQueryYear           = "year"
	URLQueryParamNarrative = "narrative"
)

const (
	FormFieldAudio = "audio"
	FormFieldText  = "text"
)
