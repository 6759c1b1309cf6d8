package constvars

const (
	LoggingRequestIDKey         = "request_id"
	LoggingUserIDKey            = "user_id"
	LoggingUsernameKey          = "username"
	LoggingSessionIDKey         = "session_id"
	LoggingPatientIDKey         = "patient_id"
	LoggingGorillaIDKey         = "gorilla_id"
	LoggingCategoryKey          = "category"
	LoggingResourceTypeKey      = "resource_type"
	LoggingEntriesCountKey      = "entries_count"
	LoggingDuplicatesCountKey   = "duplicates_count"
	LoggingAddedCountKey        = "added_count"
	LoggingTotalCountKey        = "total_count"
	LoggingURLKey               = "url"
	LoggingStatusCodeKey        = "status_code"
	LoggingMethodKey            = "method"
	LoggingEndpointKey          = "endpoint"
	LoggingRemoteAddrKey        = "remote_addr"
	LoggingUserAgentKey         = "user_agent"
	LoggingQueryKey             = "query"
	LoggingDurationKey          = "duration"
	LoggingSuccessKey           = "success"
	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingLockStoredValueKey   = "lock_stored_value"
	LoggingLockExpectedValueKey = "lock_expected_value"
	LoggingBucketNameKey        = "bucket_name"
	LoggingObjectNameKey        = "object_name"
	LoggingQueueKey             = "queue"
	LoggingEventKey             = "event"
	LoggingModelKey             = "model"
	LoggingDomainKey            = "domain"
	LoggingErrorTypeKey         = "error_type"
	LoggingMigrationCountKey    = "migration_count"
	LoggingDuplicateKeyKey      = "duplicate_key"
)
