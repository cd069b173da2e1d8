package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/delivery/http/middlewares"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/delivery/http/routers"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/drivers/database"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/drivers/logger"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/drivers/messaging"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/drivers/storage"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/fhirproxy"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/hl7messages"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/processmessage"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/transaction"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/binaries"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/fhirclients"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/resources"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/audit"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/locker"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/messagelog"
	redisRepository "github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/redis"
	objectStorage "github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/storage"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/tokenprovider"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/retry"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	if err := config.Validate(internalConfig, driverConfig); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         logger.NewZapLogger(driverConfig, internalConfig),
		AuditLogger:    logger.NewLogrusLogger(driverConfig, internalConfig),
		Redis:          database.NewRedisClient(driverConfig),
		MongoDB:        database.NewMongoDB(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Minio:          storage.NewMinio(driverConfig),
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		bootstrap.Logger.Info("Server listening", zap.String("addr", server.Addr))
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

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig

	// Token provider
	var tokens contracts.TokenProvider
	if cfg.Auth.CognitoClientID != "" {
		tokens = tokenprovider.NewCognitoProvider(tokenprovider.CognitoConfig{
			Region:   cfg.Auth.CognitoRegion,
			ClientID: cfg.Auth.CognitoClientID,
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
			APIKey:   cfg.Auth.APIKey,
			Endpoint: cfg.Auth.CognitoEndpoint,
		}, nil, bootstrap.Logger)
	} else {
		tokens = tokenprovider.NewStaticProvider(cfg.Auth.StaticToken, cfg.Auth.APIKey)
	}

	// Clinical data repository
	fhirClient := resources.NewResourceFhirClient(resources.Config{
		BaseUrl:           cfg.FHIR.BaseUrl,
		Timeout:           cfg.FHIR.Timeout,
		RequestsPerSecond: cfg.FHIR.RequestsPerSecond,
		Burst:             cfg.FHIR.Burst,
	}, tokens, nil, bootstrap.Logger)

	// Redis lock and reference cache
	var lockService contracts.LockerService
	var cache contracts.RedisRepository
	if bootstrap.Redis != nil {
		cache = redisRepository.NewRedisRepository(bootstrap.Redis, bootstrap.Logger)
		hostname, _ := os.Hostname()
		lockService = locker.NewLockService(cache, hostname, bootstrap.Logger)
	}

	// Audit
	publisher := audit.NewNoopPublisher()
	if bootstrap.RabbitMQ != nil {
		rabbitMQPublisher, err := audit.NewRabbitMQPublisher(bootstrap.RabbitMQ, cfg.RabbitMQ.AuditQueue)
		if err != nil {
			return err
		}
		publisher = rabbitMQPublisher
	}
	auditService := audit.NewAuditService(audit.Source{
		Name:       cfg.App.Name,
		Version:    cfg.App.Version,
		BaseUrl:    cfg.App.BaseUrl,
		CDRBaseUrl: cfg.FHIR.BaseUrl,
	}, publisher, bootstrap.AuditLogger, bootstrap.Logger)

	// Upsert engine and collaborators
	engine := upsert.NewEngine(fhirClient, lockService, auditService, cache, upsert.Config{
		Policy: retry.Policy{
			MaxAttempts:     cfg.Retry.MaxAttempts,
			InitialInterval: cfg.Retry.InitialInterval,
			MaxInterval:     cfg.Retry.MaxInterval,
		},
		LockTTL:  cfg.Upsert.LockTTL,
		LockWait: cfg.Upsert.LockWait,
		CacheTTL: cfg.Upsert.CacheTTL,
	}, bootstrap.Logger)
	clients := fhirclients.New(engine, bootstrap.Logger)

	// Binary archive
	binaryStorage := objectStorage.NewNoopStorage()
	if bootstrap.Minio != nil {
		binaryStorage = objectStorage.NewMinioStorage(bootstrap.Minio, cfg.Minio.Region, bootstrap.Logger)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := binaryStorage.EnsureBucket(ctx, cfg.Minio.BucketName)
		cancel()
		if err != nil {
			return err
		}
	}
	binaryClient := binaries.NewBinaryFhirClient(engine, binaryStorage, cfg.Minio.BucketName, bootstrap.Logger)

	// HL7 v2 message journal
	journal := messagelog.NewNoopJournal()
	if bootstrap.MongoDB != nil {
		journal = messagelog.NewHL7MessageMongoRepository(bootstrap.MongoDB, cfg.MongoDB.JournalDBName)
	}

	// Usecases
	processMessageUsecase := processmessage.NewProcessMessageUsecase(clients.Registry, clients.Tasks, clients.DocumentReferences, binaryClient, bootstrap.Logger)
	transactionUsecase := transaction.NewTransactionUsecase(clients.Registry, clients.DocumentReferences, binaryClient, bootstrap.Logger)
	hl7Usecase := hl7messages.NewHL7Usecase(clients.Registry, journal, bootstrap.Logger)
	fhirProxyUsecase := fhirproxy.NewFhirProxyUsecase(fhirClient, clients.Registry, constvars.ProxiedResources, bootstrap.Logger)

	// Controllers
	hl7Controller := hl7messages.NewHL7Controller(bootstrap.Logger, hl7Usecase)
	fhirController := fhirproxy.NewFhirController(
		bootstrap.Logger,
		fhirProxyUsecase,
		processMessageUsecase,
		transactionUsecase,
		fhirproxy.CapabilityStatement(fhirproxy.ServerInfo{
			Name:      cfg.App.Name,
			Version:   cfg.App.Version,
			Publisher: cfg.App.Publisher,
			BaseUrl:   cfg.App.BaseUrl,
		}, constvars.ProxiedResources, time.Now()),
	)

	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewares.NewMiddlewares(bootstrap.Logger, cfg),
		hl7Controller,
		fhirController,
	)
	return nil
}
