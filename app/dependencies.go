package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/config"
	"github.com/lawmate-ai/backend/repositories"
	"github.com/lawmate-ai/backend/repositories/postgres"
	"github.com/lawmate-ai/backend/services/chat"
	"github.com/lawmate-ai/backend/services/embedding"
	"github.com/lawmate-ai/backend/services/generation"
	"github.com/lawmate-ai/backend/services/history"
	"github.com/lawmate-ai/backend/services/retrieval"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Forms         repositories.FormRepository
	Professionals repositories.ProfessionalRepository

	// Services
	Retrieval  *retrieval.Service
	Generation *generation.Service
	History    *history.Store
	Chat       *chat.Service
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := deps.initRetrieval(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize retrieval: %w", err)
	}

	deps.initGeneration(cfg)
	deps.initChat(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection, schema and repositories
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := d.DB.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	repos := factory.NewRepositories()
	d.Forms = repos.Forms
	d.Professionals = repos.Professionals

	d.Logger.Info("repositories initialized")
	return nil
}

// initRetrieval connects to the vector index and builds the searcher for
// the configured embedding strategy
func (d *Dependencies) initRetrieval(ctx context.Context, cfg *config.Config) error {
	index, err := retrieval.Connect(ctx, cfg.Pinecone)
	if err != nil {
		return fmt.Errorf("failed to connect to vector index: %w", err)
	}

	var embedder embedding.Embedder
	if cfg.Embedding.Mode == config.EmbeddingModeEncode {
		embedder = embedding.NewEncoder(cfg.Embedding)
	}

	searcher, err := retrieval.NewSearcher(cfg.Embedding.Mode, index, embedder)
	if err != nil {
		return err
	}

	d.Retrieval = retrieval.NewService(
		searcher,
		retrieval.NewIndexStatsProvider(index),
		cfg.Retrieval.TopK,
		d.Logger,
	)

	d.Logger.Info("retrieval initialized",
		zap.String("index", cfg.Pinecone.Index),
		zap.String("embedding_mode", cfg.Embedding.Mode))
	return nil
}

func (d *Dependencies) initGeneration(cfg *config.Config) {
	d.Generation = generation.NewService(cfg.Groq, d.Logger)
	d.Logger.Info("generation initialized", zap.String("model", cfg.Groq.Model))
}

func (d *Dependencies) initChat(cfg *config.Config) {
	d.History = history.NewStore(cfg.History.MaxTurns)
	d.Chat = chat.NewService(d.Retrieval, d.Generation, d.History, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
