package config

type (
	DriverConfig struct {
		Postgres Postgres
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	Postgres struct {
		Host         string
		Port         string
		Username     string
		Password     string
		DbName       string
		SSLMode      string
		MaxOpenConns int
		MaxIdleConns int
	}
	MongoDB struct {
		Port     string
		Host     string
		Username string
		Password string
		DbName   string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)
