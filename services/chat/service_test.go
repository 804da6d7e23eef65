package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/models"
	"github.com/lawmate-ai/backend/services/generation"
	"github.com/lawmate-ai/backend/services/history"
)

// MockRetriever is a mock implementation of Retriever
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string, topK int) []models.RetrievedPassage {
	args := m.Called(ctx, query, topK)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.RetrievedPassage)
}

// MockGenerator is a mock implementation of Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, query string, passages []models.RetrievedPassage, service string) (string, error) {
	args := m.Called(ctx, query, passages, service)
	return args.String(0), args.Error(1)
}

func TestAsk(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	passagesAB := []models.RetrievedPassage{
		{ID: "p1", Score: 0.9, Text: "A"},
		{ID: "p2", Score: 0.8, Text: "B"},
	}

	t.Run("appends user and assistant turns in order", func(t *testing.T) {
		retriever := new(MockRetriever)
		generator := new(MockGenerator)
		store := history.NewStore(0)
		svc := NewService(retriever, generator, store, logger)

		retriever.On("Retrieve", mock.Anything, "query text", 0).Return(passagesAB)
		generator.On("Generate", mock.Anything, "query text", passagesAB, models.ServiceConsultation).
			Return("answer", nil)

		answer, err := svc.Ask(ctx, models.ServiceConsultation, "u1", "query text")
		require.NoError(t, err)
		assert.Equal(t, "answer", answer)

		turns := store.Get(models.ServiceConsultation, "u1")
		assert.Equal(t, []models.ConversationTurn{
			{Role: models.RoleUser, Content: "query text"},
			{Role: models.RoleAssistant, Content: "answer"},
		}, turns)

		retriever.AssertExpectations(t)
		generator.AssertExpectations(t)
	})

	t.Run("rejects unknown service category", func(t *testing.T) {
		retriever := new(MockRetriever)
		generator := new(MockGenerator)
		svc := NewService(retriever, generator, history.NewStore(0), logger)

		_, err := svc.Ask(ctx, "tax-law", "u1", "query")
		assert.ErrorIs(t, err, ErrInvalidService)
		retriever.AssertNotCalled(t, "Retrieve")
		generator.AssertNotCalled(t, "Generate")
	})

	t.Run("rejects empty query", func(t *testing.T) {
		retriever := new(MockRetriever)
		generator := new(MockGenerator)
		svc := NewService(retriever, generator, history.NewStore(0), logger)

		_, err := svc.Ask(ctx, models.ServiceConsultation, "u1", "")
		assert.ErrorIs(t, err, ErrEmptyQuery)
		retriever.AssertNotCalled(t, "Retrieve")
	})

	t.Run("degraded retrieval still completes", func(t *testing.T) {
		retriever := new(MockRetriever)
		generator := new(MockGenerator)
		store := history.NewStore(0)
		svc := NewService(retriever, generator, store, logger)

		// Retrieval provider failure surfaces here as an empty passage list
		retriever.On("Retrieve", mock.Anything, "query text", 0).Return(nil)
		generator.On("Generate", mock.Anything, "query text", []models.RetrievedPassage(nil), models.ServiceConsultation).
			Return("answer without context", nil)

		answer, err := svc.Ask(ctx, models.ServiceConsultation, "u1", "query text")
		require.NoError(t, err)
		assert.Equal(t, "answer without context", answer)
		assert.Len(t, store.Get(models.ServiceConsultation, "u1"), 2)
	})

	t.Run("generation failure records nothing", func(t *testing.T) {
		retriever := new(MockRetriever)
		generator := new(MockGenerator)
		store := history.NewStore(0)
		svc := NewService(retriever, generator, store, logger)

		retriever.On("Retrieve", mock.Anything, "query text", 0).Return(passagesAB)
		generator.On("Generate", mock.Anything, "query text", passagesAB, models.ServiceConsultation).
			Return("", generation.ErrProviderFailure)

		_, err := svc.Ask(ctx, models.ServiceConsultation, "u1", "query text")
		assert.ErrorIs(t, err, generation.ErrProviderFailure)
		assert.Empty(t, store.Get(models.ServiceConsultation, "u1"))
	})

	t.Run("histories stay isolated per user", func(t *testing.T) {
		retriever := new(MockRetriever)
		generator := new(MockGenerator)
		store := history.NewStore(0)
		svc := NewService(retriever, generator, store, logger)

		retriever.On("Retrieve", mock.Anything, mock.Anything, 0).Return(nil)
		generator.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("answer", nil)

		_, err := svc.Ask(ctx, models.ServiceConsultation, "alice", "from alice")
		require.NoError(t, err)
		_, err = svc.Ask(ctx, models.ServiceConsultation, "bob", "from bob")
		require.NoError(t, err)

		aliceTurns, err := svc.History(models.ServiceConsultation, "alice")
		require.NoError(t, err)
		bobTurns, err := svc.History(models.ServiceConsultation, "bob")
		require.NoError(t, err)

		require.Len(t, aliceTurns, 2)
		require.Len(t, bobTurns, 2)
		assert.Equal(t, "from alice", aliceTurns[0].Content)
		assert.Equal(t, "from bob", bobTurns[0].Content)
	})
}

func TestHistory(t *testing.T) {
	logger := zap.NewNop()

	t.Run("unknown service is rejected", func(t *testing.T) {
		svc := NewService(new(MockRetriever), new(MockGenerator), history.NewStore(0), logger)

		_, err := svc.History("tax-law", "u1")
		assert.ErrorIs(t, err, ErrInvalidService)
	})

	t.Run("unknown user yields empty history", func(t *testing.T) {
		svc := NewService(new(MockRetriever), new(MockGenerator), history.NewStore(0), logger)

		turns, err := svc.History(models.ServiceConsultation, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, turns)
		assert.Empty(t, turns)
	})
}
