package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	api "github.com/rpupo63/agency-portfolio-backend/api"
	"github.com/rpupo63/agency-portfolio-backend/auth"
	"github.com/rpupo63/agency-portfolio-backend/config"
	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rpupo63/agency-portfolio-backend/resources"
	"github.com/rpupo63/agency-portfolio-backend/services"
	"github.com/rpupo63/agency-portfolio-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()
	setupLogger(cfg)

	if parameterPath := config.GetString(cfg, "SSM_PARAMETER_PATH", ""); parameterPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		params, err := config.LoadSSMParameters(ctx, config.GetString(cfg, "AWS_REGION", ""), parameterPath)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("path", parameterPath).Msg("loading SSM parameters")
		}
		cfg = config.Merge(cfg, params)
		setupLogger(cfg)
		log.Info().Int("count", len(params)).Str("path", parameterPath).Msg("merged SSM parameters")
	}

	currentDB, err := openDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer currentDB.Close()

	// If generating models, run generation and exit
	if config.GetBool(cfg, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(mustSQL(currentDB))
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(mustSQL(currentDB))
		return
	}

	if config.GetBool(cfg, "AUTO_MIGRATE", true) {
		if err := currentDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("migrating database")
		}
	}

	store, err := openObjectStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("configuring object store")
	}

	tokens := auth.NewTokenIssuer(
		config.GetString(cfg, "JWT_SECRET", ""),
		time.Duration(config.GetInt(cfg, "TOKEN_TTL_HOURS", 168))*time.Hour,
	)
	if config.GetString(cfg, "JWT_SECRET", "") == "" {
		log.Warn().Msg("JWT_SECRET is not set; admin login will fail")
	}

	mailer := services.NewMailer(
		config.GetString(cfg, "RESEND_API_KEY", ""),
		config.GetString(cfg, "RESEND_FROM_EMAIL", ""),
	)
	notifier := services.NewContactNotifier(
		mailer,
		config.GetString(cfg, "CONTACT_NOTIFY_EMAIL", ""),
		config.GetString(cfg, "SITE_NAME", "Portfolio"),
	)

	managers := resources.New(currentDB, store, tokens, notifier)

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	created, err := managers.Admins.EnsureBootstrapAdmin(bootstrapCtx, resources.AdminInput{
		Name:     config.GetString(cfg, "BOOTSTRAP_ADMIN_NAME", ""),
		Email:    config.GetString(cfg, "BOOTSTRAP_ADMIN_EMAIL", ""),
		Password: config.GetString(cfg, "BOOTSTRAP_ADMIN_PASSWORD", ""),
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("creating bootstrap admin")
	}
	if created {
		log.Info().Msg("bootstrap admin ready")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, managers, tokens, currentDB)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogger(cfg map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(cfg, "LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(cfg, "LOG_FORMAT", "console") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func openDatabase(cfg map[string]string) (database.Database, error) {
	dbType := config.GetString(cfg, "DB_TYPE", "postgres")
	log.Info().Str("dbType", dbType).Msg("opening document store")

	if dbType == "memory" {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return database.NewInMemory(), nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return database.Database{}, err
	}
	return database.New(db), nil
}

func mustSQL(db database.Database) *gorm.DB {
	sql := db.SQL()
	if sql == nil {
		log.Fatal().Msg("model generation needs a SQL database; DB_TYPE=memory is not supported")
	}
	return sql
}

func openObjectStore(cfg map[string]string) (storage.ObjectStore, error) {
	publicURL := config.GetString(cfg, "OBJECT_STORE_PUBLIC_URL", "")
	driver := config.GetString(cfg, "OBJECT_STORE_DRIVER", "s3")
	log.Info().Str("driver", driver).Msg("configuring object store")

	var store storage.ObjectStore
	switch driver {
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s3Store, err := storage.NewS3Store(ctx,
			config.GetString(cfg, "S3_REGION", ""),
			config.GetString(cfg, "S3_BUCKET", ""),
			config.GetString(cfg, "S3_ENDPOINT", ""),
			publicURL,
		)
		if err != nil {
			return nil, err
		}
		store = s3Store
	case "minio":
		minioStore, err := storage.NewMinioStore(
			config.GetString(cfg, "MINIO_ENDPOINT", ""),
			config.GetString(cfg, "MINIO_ACCESS_KEY", ""),
			config.GetString(cfg, "MINIO_SECRET_KEY", ""),
			config.GetString(cfg, "MINIO_BUCKET", ""),
			publicURL,
			config.GetBool(cfg, "MINIO_USE_SSL", true),
		)
		if err != nil {
			return nil, err
		}
		store = minioStore
	case "memory":
		store = storage.NewMemoryStore(publicURL)
	default:
		return nil, fmt.Errorf("unsupported OBJECT_STORE_DRIVER %q", driver)
	}
	return storage.Instrument(store), nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
