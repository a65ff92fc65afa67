package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/examtrack/core/internal/adapters/repository"
	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/infrastructure/config"
	"github.com/examtrack/core/internal/infrastructure/database"
	"github.com/examtrack/core/internal/infrastructure/logger"
	"github.com/examtrack/core/internal/infrastructure/server"
	"github.com/examtrack/core/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the ExamTrack API server",
		Long:  "Start the ExamTrack API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations for the postgres storage backend (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the default course plan to the store",
		Long:  "Write the built-in course plan to the configured storage backend. Refuses to overwrite existing course data.",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print ExamTrack version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Println("ExamTrack Core (unknown version)")
				return
			}
			fmt.Printf("ExamTrack Core v%s\n", cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	backends, cleanup, err := openBackends(cfg)
	if err != nil {
		appLogger.Fatal("Failed to open storage backend", "error", err)
	}
	defer cleanup()

	srv, err := server.New(cfg, backends, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting ExamTrack API server",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Backend,
		"environment", cfg.App.Environment,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatal("Server failed to start", "error", err)
	}
}

// openBackends builds the key-value gateway for the configured backend and
// returns the handles the server needs for health checks.
func openBackends(cfg *config.Config) (server.Backends, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		db, err := database.New(cfg.Database)
		if err != nil {
			return server.Backends{}, nil, fmt.Errorf("connect to database: %w", err)
		}
		return server.Backends{
			KV: repository.NewPostgresKVStore(db.DB),
			DB: db,
		}, func() { db.Close() }, nil

	case config.StorageBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return server.Backends{}, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return server.Backends{
			KV:    repository.NewRedisKVStore(client),
			Redis: client,
		}, func() { client.Close() }, nil

	case config.StorageBackendMemory:
		return server.Backends{KV: repository.NewMemoryKVStore()}, func() {}, nil

	default:
		return server.Backends{}, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func runSeed() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	backends, cleanup, err := openBackends(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage backend: %v", err)
	}
	defer cleanup()

	courseRepo := repository.NewCourseRepository(backends.KV)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := courseRepo.Load(ctx); err == nil {
		log.Fatalf("Seed aborted: %v", entities.ErrAlreadySeeded)
	} else if !errors.Is(err, ports.ErrKeyNotFound) {
		log.Fatalf("Seed aborted, could not inspect existing data: %v", err)
	}

	courses := entities.DefaultCourses()
	for _, course := range courses {
		if err := course.Validate(); err != nil {
			log.Fatalf("Default plan is invalid: %v", err)
		}
	}
	if err := courseRepo.Save(ctx, courses); err != nil {
		log.Fatalf("Failed to write default plan: %v", err)
	}

	fmt.Printf("Seeded %d courses\n", len(courses))
}

func runMigration(direction string) {
	m := newMigrator()

	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m := newMigrator()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied yet")
			return
		}
		log.Fatalf("Failed to read migration version: %v", err)
	}

	fmt.Printf("Current version: %d (dirty: %t)\n", version, dirty)
}

func newMigrator() *migrate.Migrate {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Storage.Backend != config.StorageBackendPostgres {
		log.Fatalf("Migrations only apply to the postgres storage backend (configured: %s)", cfg.Storage.Backend)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	return m
}
