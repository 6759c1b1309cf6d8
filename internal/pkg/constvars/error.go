package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required":        "is required",
	"email":           "must be a valid email",
	"alphanum":        "must contain only alphanumeric characters",
	"min":             "must be at least %s characters long",
	"max":             "maximum at %s characters long",
	"oneof":           "must be one of %s",
	"len":             "must be exactly %s characters long",
	"password":        "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"record_category": "must be conditions or family-history",
	"fhir_date":       "must be a date in YYYY-MM-DD format",
	"year":            "must be a four digit year",
}

// Validation tags whose message embeds the tag parameter
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"len":   true,
}

// Error messages for clients
const (
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientUsernameAlreadyExists         = "username already used"
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidUsernameOrPassword     = "invalid username or password"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientProfileNotFound               = "please create your profile first"
	ErrClientProfileNotImported            = "your profile was created manually, import your profile from the central health system to use this feature"
	ErrClientRecordSaveInProgress          = "another save of these records is in progress, please try again"
	ErrClientUnknownRecordCategory         = "unknown record category"
	ErrClientUpstreamUnavailable           = "the health data service is not available right now"
	ErrClientMissingSearchParams           = "missing required query params: 'given' and 'family'"
	ErrClientMissingText                   = "missing 'text'"
	ErrClientAssistantNotConfigured        = "the assistant is not configured, please contact your administrator"
	ErrClientAssistantCannotUnderstand     = "the assistant could not understand the answer, please try again"
	ErrClientAudioTooLarge                 = "the audio file is too large"
	ErrClientReportWithoutData             = "no medical conditions or family history found in your records"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form"
	ErrDevValidationFailed         = "validation failed"
	ErrDevURLParamValidationFailed = "url param %s validation failed"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevInvalidCredentials       = "invalid credentials"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevReadHTTPResponse         = "failed to read HTTP response"
	ErrDevUpstreamStatus           = "upstream %s responded with status %d"
	ErrDevUserNotExists            = "user not exists"
	ErrDevEmailAlreadyExists       = "email already exists"
	ErrDevUsernameAlreadyExists    = "username already exists"
	ErrDevProfileNotExists         = "profile not exists"
	ErrDevProfileWithoutGorillaID  = "profile has no gorilla id"
	ErrDevRecordUnknownCategory    = "unknown record category %s"
	ErrDevRecordLockNotAcquired    = "record lock %s not acquired"
	ErrDevMissingSearchParams      = "missing given or family search param"
	ErrDevMissingText              = "missing text param"
	ErrDevOpenAINotConfigured      = "openai api key is not configured"
	ErrDevOpenAIRequest            = "openai request failed"
	ErrDevOpenAIEmptyChoices       = "openai returned no choices"
	ErrDevOpenAIInvalidPayload     = "openai returned an invalid payload"
	ErrDevOpenAIInputNotRelevant   = "openai marked the input as not relevant"
	ErrDevIMORequest               = "imo request failed"
	ErrDevFHIRGetResource          = "failed to get FHIR %s resource"
	ErrDevFHIRDecodeResponse       = "failed to decode FHIR %s response"
	ErrDevFHIROperationOutcome     = "FHIR %s operation outcome: %s"
	ErrDevRateLimitWait            = "outbound rate limiter wait failed"
	ErrDevAudioTooLarge            = "audio exceeds %d bytes"
	ErrDevReportWithoutData        = "no conditions and no family history to report"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalid          = "invalid token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthSessionNotFound       = "session not found"

	// Database messages
	ErrDevDBFailedToFindData     = "failed to find data"
	ErrDevDBFailedToInsertData   = "failed to insert data"
	ErrDevDBFailedToUpdateData   = "failed to update data"
	ErrDevDBFailedToUpsertData   = "failed to upsert data"
	ErrDevDBFailedToScanData     = "failed to scan data"
	ErrDevMongoFailedToFindDoc   = "failed to find mongo document"
	ErrDevMongoFailedToUpsertDoc = "failed to upsert mongo document"

	// Redis messages
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisGetNoData  = "no data on redis key %s"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object on bucket %s"
	ErrDevMinioFailedToPresignURL   = "failed to presign object url on bucket %s"

	// RabbitMQ messages
	ErrDevRabbitMQOpenChannel    = "failed to open rabbitmq channel"
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
)
