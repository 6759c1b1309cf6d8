package exceptions

import (
	"fmt"
	"theracare-service/internal/pkg/constvars"
)

var (
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrHashPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToHashPassword)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrInvalidUsernameOrPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientInvalidUsernameOrPassword, constvars.ErrDevInvalidCredentials)
	}
	ErrEmailAlreadyExist = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientEmailAlreadyExists, constvars.ErrDevEmailAlreadyExists)
	}
	ErrUsernameAlreadyExist = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientUsernameAlreadyExists, constvars.ErrDevUsernameAlreadyExists)
	}
	ErrUserNotExist = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientCannotProcessRequest, constvars.ErrDevUserNotExists)
	}

	// Parse
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}

	// Auth
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthGenerateToken)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrSessionNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthSessionNotFound)
	}

	// Profile
	ErrProfileNotExist = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientProfileNotFound, constvars.ErrDevProfileNotExists)
	}
	ErrProfileNotImported = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientProfileNotImported, constvars.ErrDevProfileWithoutGorillaID)
	}

	// Records
	ErrUnknownRecordCategory = func(err error, category string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientUnknownRecordCategory, fmt.Sprintf(constvars.ErrDevRecordUnknownCategory, category))
	}
	ErrRecordSaveInProgress = func(err error, lockKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientRecordSaveInProgress, fmt.Sprintf(constvars.ErrDevRecordLockNotAcquired, lockKey))
	}

	// Gateway and terminology
	ErrMissingSearchParams = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientMissingSearchParams, constvars.ErrDevMissingSearchParams)
	}
	ErrMissingText = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientMissingText, constvars.ErrDevMissingText)
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevSendHTTPRequest)
	}
	ErrReadHTTPResponse = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevReadHTTPResponse)
	}
	ErrUpstreamStatus = func(err error, upstream string, statusCode int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevUpstreamStatus, upstream, statusCode))
	}
	ErrRateLimitWait = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevRateLimitWait)
	}
	ErrGetFHIRResource = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevFHIRGetResource, resourceType))
	}
	ErrDecodeFHIRResponse = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevFHIRDecodeResponse, resourceType))
	}
	ErrFHIROperationOutcome = func(err error, resourceType, diagnostics string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevFHIROperationOutcome, resourceType, diagnostics))
	}
	ErrIMORequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevIMORequest)
	}

	// Reports
	ErrReportWithoutData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, constvars.ErrClientReportWithoutData, constvars.ErrDevReportWithoutData)
	}

	// OpenAI
	ErrOpenAINotConfigured = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientAssistantNotConfigured, constvars.ErrDevOpenAINotConfigured)
	}
	ErrOpenAIRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevOpenAIRequest)
	}
	ErrOpenAIInvalidPayload = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, constvars.ErrClientAssistantCannotUnderstand, constvars.ErrDevOpenAIInvalidPayload)
	}
	ErrAudioTooLarge = func(err error, maxBytes int64) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestTooLarge, constvars.ErrClientAudioTooLarge, fmt.Sprintf(constvars.ErrDevAudioTooLarge, maxBytes))
	}
	ErrOpenAIInputNotRelevant = func(err error, feedback string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, feedback, constvars.ErrDevOpenAIInputNotRelevant)
	}

	// Postgres DB
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData)
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData)
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData)
	}
	ErrPostgresDBUpsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpsertData)
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoFailedToFindDoc)
	}
	ErrMongoDBUpsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoFailedToUpsertDoc)
	}

	// Redis
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}
	ErrMinioPresignURL = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToPresignURL, bucketName))
	}

	// RabbitMQ
	ErrRabbitMQOpenChannel = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQOpenChannel)
	}
	ErrRabbitMQPublishMessage = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queue))
	}
)
