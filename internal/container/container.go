package container

import (
	"context"
	"fmt"

	"healthlens/adapters/postgres"
	"healthlens/adapters/tabular"
	"healthlens/app"
	"healthlens/internal"
	"healthlens/internal/config"
	"healthlens/internal/retrieval"
	"healthlens/internal/testkit"
	"healthlens/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Data access
	Reader ports.DatasetReader

	// Services
	Health    *app.HealthService
	Retriever *retrieval.Retriever
	Ingestor  *retrieval.Ingestor

	// Demo infrastructure: seeded generator plus in-memory search index
	Kit *testkit.TestKit

	logger *internal.Logger
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg, logger: internal.DefaultLogger}, nil
}

// Init wires the default file-backed dependency graph: tabular loader,
// in-memory search index seeded with the demo corpus, and the services
// on top of them.
func (c *Container) Init() error {
	kit, err := testkit.NewTestKit()
	if err != nil {
		return fmt.Errorf("failed to initialize test kit: %w", err)
	}
	c.Kit = kit

	c.Reader = tabular.NewLoader(c.Config.Data.Dir, c.logger)
	c.initServices()

	c.logger.Info("container initialized with data dir %s", c.Config.Data.Dir)
	return nil
}

// InitWithDatabase swaps the dataset reader for the warehouse-backed one.
// Call after Init; the file loader is replaced, everything else stays.
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.Reader = postgres.NewHealthRepository(db)
	c.initServices()

	c.logger.Info("container switched to warehouse-backed datasets")
	return nil
}

func (c *Container) initServices() {
	c.Health = app.NewHealthService(c.Reader, c.logger)
	c.Retriever = retrieval.NewRetriever(c.Kit.Searcher, c.logger, c.Config.Retrieval.TopK)
	c.Ingestor = retrieval.NewIngestor(c.Kit.Searcher, c.logger)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
