package config

type InternalConfig struct {
	App           App              `mapstructure:"app"`
	JWT           AppJWT           `mapstructure:"jwt"`
	HealthGorilla AppHealthGorilla `mapstructure:"health_gorilla"`
	IMO           AppIMO           `mapstructure:"imo"`
	OpenAI        AppOpenAI        `mapstructure:"openai"`
	Records       AppRecords       `mapstructure:"records"`
	Minio         AppMinio         `mapstructure:"minio"`
	RabbitMQ      AppRabbitMQ      `mapstructure:"rabbitmq"`
	MongoDB       AppMongoDB       `mapstructure:"mongodb"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Address                    string   `mapstructure:"address"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	CorsAllowedOrigins         []string `mapstructure:"cors_allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
	RunMigrationsOnStart       bool     `mapstructure:"run_migrations_on_start"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

// AppHealthGorilla configures the clinical data API and its OAuth2 client credentials.
type AppHealthGorilla struct {
	BaseUrl                 string   `mapstructure:"base_url"`
	TokenUrl                string   `mapstructure:"token_url"`
	ClientID                string   `mapstructure:"client_id"`
	ClientSecret            string   `mapstructure:"client_secret"`
	Scopes                  []string `mapstructure:"scopes"`
	RequestsPerSecond       float64  `mapstructure:"requests_per_second"`
	Burst                   int      `mapstructure:"burst"`
	RequestTimeoutInSeconds int      `mapstructure:"request_timeout_in_seconds"`
}

type AppIMO struct {
	BaseUrl                 string   `mapstructure:"base_url"`
	TokenUrl                string   `mapstructure:"token_url"`
	ClientID                string   `mapstructure:"client_id"`
	ClientSecret            string   `mapstructure:"client_secret"`
	Scopes                  []string `mapstructure:"scopes"`
	RequestsPerSecond       float64  `mapstructure:"requests_per_second"`
	Burst                   int      `mapstructure:"burst"`
	RequestTimeoutInSeconds int      `mapstructure:"request_timeout_in_seconds"`
}

type AppOpenAI struct {
	APIKey                    string  `mapstructure:"api_key"`
	BaseUrl                   string  `mapstructure:"base_url"`
	ExtractionModel           string  `mapstructure:"extraction_model"`
	ReportModel               string  `mapstructure:"report_model"`
	ReportTemperature         float64 `mapstructure:"report_temperature"`
	ReportMaxRetries          int     `mapstructure:"report_max_retries"`
	ReportRetryDelayInSeconds int     `mapstructure:"report_retry_delay_in_seconds"`
	RequestTimeoutInSeconds   int     `mapstructure:"request_timeout_in_seconds"`
}

type AppRecords struct {
	StoreDriver         string `mapstructure:"store_driver"`
	LockExpiryInSeconds int    `mapstructure:"lock_expiry_in_seconds"`
}

type AppMinio struct {
	BucketName                               string `mapstructure:"bucket_name"`
	MinioPreSignedUrlObjectExpiryTimeInHours int    `mapstructure:"minio_pre_signed_url_object_expiry_time_in_hours"`
	AudioMaxUploadSizeInMB                   int    `mapstructure:"audio_max_upload_size_in_mb"`
}

type AppRabbitMQ struct {
	EventsQueue string `mapstructure:"events_queue"`
}

type AppMongoDB struct {
	DbName               string `mapstructure:"db_name"`
	RecordCollectionName string `mapstructure:"record_collection_name"`
}
