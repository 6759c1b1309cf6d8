package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	HealthCheckSuccessMessage = "service is healthy"

	// Auth messages
	SignupSuccessMessage = "account created successfully"
	LoginSuccessMessage  = "successfully login"
	LogoutSuccessMessage = "successfully logout"

	// Profile messages
	ProfileGetSuccessMessage      = "get profile successfully"
	ProfileSavedSuccessMessage    = "profile saved successfully"
	ProfileImportedSuccessMessage = "profile imported successfully"

	// Record messages
	RecordsGetSuccessMessage     = "get records successfully"
	RecordsSummarySuccessMessage = "get records summary successfully"
	RecordsSavedSuccessMessage   = "records saved successfully"

	// Gateway messages
	GatewaySearchSuccessMessage   = "search patients successfully"
	GatewayPatientSuccessMessage  = "get patient successfully"
	GatewayResourceSuccessMessage = "get resources successfully"

	// Terminology messages
	TerminologySearchSuccessMessage   = "search terminology successfully"
	TerminologyTokenizeSuccessMessage = "tokenize text successfully"

	// Assistant messages
	AssistantTranscribeSuccessMessage = "transcribe audio successfully"
	AssistantExtractSuccessMessage    = "extract information successfully"

	// User and report messages
	UserDataGetSuccessMessage     = "get user data successfully"
	ReportGeneratedSuccessMessage = "health report generated successfully"
)
