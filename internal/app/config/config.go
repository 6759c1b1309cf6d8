package config

import (
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:         utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:         utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:     utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:     utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DbName:       utils.GetEnvString("POSTGRES_DB_NAME", "theracare"),
			SSLMode:      utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns: utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns: utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "theracare"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			CorsAllowedOrigins:         utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			RunMigrationsOnStart:       utils.GetEnvBool("APP_RUN_MIGRATIONS_ON_START", false),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		HealthGorilla: AppHealthGorilla{
			BaseUrl:                 utils.GetEnvString("HEALTH_GORILLA_BASE_URL", "https://sandbox.healthgorilla.com/fhir"),
			TokenUrl:                utils.GetEnvString("HEALTH_GORILLA_TOKEN_URL", "https://sandbox.healthgorilla.com/oauth/token"),
			ClientID:                utils.GetEnvString("HEALTH_GORILLA_CLIENT_ID", ""),
			ClientSecret:            utils.GetEnvString("HEALTH_GORILLA_CLIENT_SECRET", ""),
			Scopes:                  utils.GetEnvStringSlice("HEALTH_GORILLA_SCOPES", []string{"user/*.*"}),
			RequestsPerSecond:       utils.GetEnvFloat("HEALTH_GORILLA_REQUESTS_PER_SECOND", 5),
			Burst:                   utils.GetEnvInt("HEALTH_GORILLA_BURST", 5),
			RequestTimeoutInSeconds: utils.GetEnvInt("HEALTH_GORILLA_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		IMO: AppIMO{
			BaseUrl:                 utils.GetEnvString("IMO_BASE_URL", "https://api.imohealth.com"),
			TokenUrl:                utils.GetEnvString("IMO_TOKEN_URL", "https://auth.imohealth.com/oauth/token"),
			ClientID:                utils.GetEnvString("IMO_CLIENT_ID", ""),
			ClientSecret:            utils.GetEnvString("IMO_CLIENT_SECRET", ""),
			Scopes:                  utils.GetEnvStringSlice("IMO_SCOPES", nil),
			RequestsPerSecond:       utils.GetEnvFloat("IMO_REQUESTS_PER_SECOND", 5),
			Burst:                   utils.GetEnvInt("IMO_BURST", 5),
			RequestTimeoutInSeconds: utils.GetEnvInt("IMO_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		OpenAI: AppOpenAI{
			APIKey:                    utils.GetEnvString("OPENAI_API_KEY", ""),
			BaseUrl:                   utils.GetEnvString("OPENAI_BASE_URL", ""),
			ExtractionModel:           utils.GetEnvString("OPENAI_EXTRACTION_MODEL", constvars.OpenAIModelExtraction),
			ReportModel:               utils.GetEnvString("OPENAI_REPORT_MODEL", constvars.OpenAIModelExtraction),
			ReportTemperature:         utils.GetEnvFloat("OPENAI_REPORT_TEMPERATURE", 0.7),
			ReportMaxRetries:          utils.GetEnvInt("OPENAI_REPORT_MAX_RETRIES", 3),
			ReportRetryDelayInSeconds: utils.GetEnvInt("OPENAI_REPORT_RETRY_DELAY_IN_SECONDS", 5),
			RequestTimeoutInSeconds:   utils.GetEnvInt("OPENAI_REQUEST_TIMEOUT_IN_SECONDS", 120),
		},
		Records: AppRecords{
			StoreDriver:         utils.GetEnvString("RECORD_STORE_DRIVER", constvars.RecordStoreDriverPostgres),
			LockExpiryInSeconds: utils.GetEnvInt("RECORD_LOCK_EXPIRY_IN_SECONDS", 30),
		},
		Minio: AppMinio{
			BucketName:                               utils.GetEnvString("MINIO_BUCKET_NAME", "theracare"),
			MinioPreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 24),
			AudioMaxUploadSizeInMB:                   utils.GetEnvInt("MINIO_AUDIO_MAX_UPLOAD_SIZE_IN_MB", 25),
		},
		RabbitMQ: AppRabbitMQ{
			EventsQueue: utils.GetEnvString("RABBITMQ_EVENTS_QUEUE", "theracare.events"),
		},
		MongoDB: AppMongoDB{
			DbName:               utils.GetEnvString("MONGODB_DB_NAME", "theracare"),
			RecordCollectionName: utils.GetEnvString("MONGODB_RECORD_COLLECTION_NAME", "record_collections"),
		},
	}
}
