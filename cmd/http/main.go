package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/delivery/http/middlewares"
	"theracare-service/internal/app/delivery/http/routers"
	"theracare-service/internal/app/drivers/database"
	"theracare-service/internal/app/drivers/logger"
	"theracare-service/internal/app/drivers/messaging"
	"theracare-service/internal/app/drivers/storage"
	"theracare-service/internal/app/services/core/assistant"
	"theracare-service/internal/app/services/core/auth"
	"theracare-service/internal/app/services/core/gateway"
	"theracare-service/internal/app/services/core/profiles"
	"theracare-service/internal/app/services/core/records"
	"theracare-service/internal/app/services/core/reports"
	"theracare-service/internal/app/services/core/session"
	"theracare-service/internal/app/services/core/terminology"
	"theracare-service/internal/app/services/core/users"
	"theracare-service/internal/app/services/healthgorilla"
	"theracare-service/internal/app/services/imo"
	"theracare-service/internal/app/services/openai"
	"theracare-service/internal/app/services/shared/events"
	"theracare-service/internal/app/services/shared/locker"
	"theracare-service/internal/app/services/shared/metrics"
	"theracare-service/internal/app/services/shared/redis"
	minioStorage "theracare-service/internal/app/services/shared/storage"
	"theracare-service/internal/migration"
	"theracare-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	ctx := context.Background()
	postgresDB := database.NewPostgresDB(ctx, driverConfig)
	redisClient := database.NewRedisClient(ctx, driverConfig)
	minioClient := storage.NewMinio(ctx, driverConfig, internalConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Postgres:       postgresDB,
		Redis:          redisClient,
		Minio:          minioClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	if internalConfig.Records.StoreDriver == constvars.RecordStoreDriverMongo {
		bootstrap.MongoDB = database.NewMongoDB(ctx, driverConfig)
	}

	if internalConfig.App.RunMigrationsOnStart {
		_, err := migration.Up(postgresDB, zapLogger)
		if err != nil {
			log.Fatalf("Error running migrations: %v", err)
		}
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    net.JoinHostPort(internalConfig.App.Address, internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	// Shutdown the server
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	zapLog := bootstrap.Logger

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	recordMetrics := metrics.NewRecordMetrics(registry)

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, zapLog)
	storageService := minioStorage.NewMinioStorage(bootstrap.Minio, zapLog)
	eventPublisher, err := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.EventsQueue, zapLog)
	if err != nil {
		return err
	}

	// Upstream clients
	healthGorillaClient := healthgorilla.NewHealthGorillaClient(internalConfig.HealthGorilla, zapLog)
	imoClient := imo.NewIMOClient(internalConfig.IMO, zapLog)
	openAIClient := openai.NewOpenAIClient(internalConfig.OpenAI, zapLog)

	// Repositories
	userRepository := users.NewUserPostgresRepository(bootstrap.Postgres, zapLog)
	profileRepository := profiles.NewProfilePostgresRepository(bootstrap.Postgres, zapLog)
	var recordRepository contracts.RecordRepository
	if bootstrap.MongoDB != nil {
		recordRepository = records.NewRecordMongoRepository(
			bootstrap.MongoDB,
			internalConfig.MongoDB.DbName,
			internalConfig.MongoDB.RecordCollectionName,
			zapLog,
		)
	} else {
		recordRepository = records.NewRecordPostgresRepository(bootstrap.Postgres, zapLog)
	}

	// Usecases
	sessionService := session.NewSessionService(redisRepository, zapLog)
	authUsecase := auth.NewAuthUsecase(userRepository, sessionService, internalConfig, zapLog)
	gatewayUsecase := gateway.NewGatewayUsecase(healthGorillaClient, zapLog)
	clinicalDataFetcher := gateway.NewClinicalDataFetcher(healthGorillaClient, recordMetrics, zapLog)
	profileUsecase := profiles.NewProfileUsecase(profileRepository, gatewayUsecase, zapLog)
	terminologyUsecase := terminology.NewTerminologyUsecase(imoClient, zapLog)
	recordUsecase := records.NewRecordUsecase(
		recordRepository,
		profileRepository,
		clinicalDataFetcher,
		terminologyUsecase,
		lockerService,
		eventPublisher,
		recordMetrics,
		internalConfig,
		zapLog,
	)
	assistantUsecase := assistant.NewAssistantUsecase(openAIClient, storageService, internalConfig, zapLog)
	userUsecase := users.NewUserUsecase(userRepository, profileRepository, recordRepository, zapLog)
	reportUsecase := reports.NewReportUsecase(
		userRepository,
		profileRepository,
		recordRepository,
		openAIClient,
		storageService,
		eventPublisher,
		internalConfig,
		zapLog,
	)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(zapLog, sessionService, httpMetrics, internalConfig)

	// Controllers
	routeControllers := &routers.Controllers{
		Auth:        controllers.NewAuthController(zapLog, authUsecase, internalConfig),
		Profile:     controllers.NewProfileController(zapLog, profileUsecase, internalConfig),
		Record:      controllers.NewRecordController(zapLog, recordUsecase, internalConfig),
		Gateway:     controllers.NewGatewayController(zapLog, gatewayUsecase, internalConfig),
		Terminology: controllers.NewTerminologyController(zapLog, terminologyUsecase, internalConfig),
		Assistant:   controllers.NewAssistantController(zapLog, assistantUsecase, internalConfig),
		User:        controllers.NewUserController(zapLog, userUsecase, internalConfig),
		Report:      controllers.NewReportController(zapLog, reportUsecase, internalConfig),
	}

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, routeControllers, metricsHandler)
	return nil
}
