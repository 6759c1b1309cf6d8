package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "THRCR_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	RecordStoreDriverPostgres = "postgres"
	RecordStoreDriverMongo    = "mongo"
)

// Record categories, also used as URL segments.
const (
	RecordCategoryConditions    = "conditions"
	RecordCategoryFamilyHistory = "family-history"
)

const (
	RedisSessionKeyPrefix    = "session:"
	RedisRecordLockKeyFormat = "lock:records:%s:%s"
)

const (
	MinioReportObjectNameFormat = "reports/%s/%s.json"
	MinioAudioObjectNameFormat  = "audio/%s/%s%s"
)

const (
	EventRecordsSaved    = "records.saved"
	EventReportGenerated = "report.generated"
)

const (
	ReportNotSpecified     = "Not specified"
	ReportNoKnownProblems  = "no known problems"
	DisplayUnknownCategory = "unknown"
	DisplayAllYears        = "All Years"
)

const (
	UpstreamHealthGorilla = "healthgorilla"
	UpstreamIMO           = "imo"
	UpstreamOpenAI        = "openai"
)
