package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lawmate-ai/backend/config"
	"github.com/lawmate-ai/backend/models"
)

// fakeIndex is a canned-response vectorIndex for searcher tests.
type fakeIndex struct {
	queryRes  *pinecone.QueryVectorsResponse
	queryErr  error
	queryReq  *pinecone.QueryByVectorValuesRequest
	searchRes *pinecone.SearchRecordsResponse
	searchErr error
	searchReq *pinecone.SearchRecordsRequest
	statsRes  *pinecone.DescribeIndexStatsResponse
	statsErr  error
}

func (f *fakeIndex) QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error) {
	f.queryReq = in
	return f.queryRes, f.queryErr
}

func (f *fakeIndex) SearchRecords(ctx context.Context, in *pinecone.SearchRecordsRequest) (*pinecone.SearchRecordsResponse, error) {
	f.searchReq = in
	return f.searchRes, f.searchErr
}

func (f *fakeIndex) DescribeIndexStats(ctx context.Context) (*pinecone.DescribeIndexStatsResponse, error) {
	return f.statsRes, f.statsErr
}

// stubEmbedder returns a fixed vector for any input.
type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.vector, s.err
}

func scoredVector(id string, score float32, text string) *pinecone.ScoredVector {
	md, err := structpb.NewStruct(map[string]interface{}{metadataTextField: text})
	if err != nil {
		panic(err)
	}
	return &pinecone.ScoredVector{
		Score:  score,
		Vector: &pinecone.Vector{Id: id, Metadata: md},
	}
}

func TestNewSearcher(t *testing.T) {
	index := &fakeIndex{}

	t.Run("encode mode requires an embedder", func(t *testing.T) {
		_, err := NewSearcher(config.EmbeddingModeEncode, index, nil)
		assert.Error(t, err)
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		_, err := NewSearcher("hybrid", index, nil)
		assert.Error(t, err)
	})

	t.Run("integrated mode needs no embedder", func(t *testing.T) {
		s, err := NewSearcher(config.EmbeddingModeIntegrated, index, nil)
		require.NoError(t, err)
		assert.IsType(t, &integratedSearcher{}, s)
	})
}

func TestEncodeSearcher(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds the query and queries by vector", func(t *testing.T) {
		queryRes := &pinecone.QueryVectorsResponse{
			Matches: []*pinecone.ScoredVector{
				scoredVector("p2", 0.71, "B"),
				scoredVector("p1", 0.93, "A"),
			},
		}
		index := &fakeIndex{queryRes: queryRes}
		embedder := &stubEmbedder{vector: []float32{0.1, 0.2, 0.3}}

		s, err := NewSearcher(config.EmbeddingModeEncode, index, embedder)
		require.NoError(t, err)

		passages, err := s.Search(ctx, "what is theft", 2)
		require.NoError(t, err)

		require.NotNil(t, index.queryReq)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, index.queryReq.Vector)
		assert.Equal(t, uint32(2), index.queryReq.TopK)
		assert.True(t, index.queryReq.IncludeMetadata)

		// Best score first regardless of provider ordering
		assert.Equal(t, []models.RetrievedPassage{
			{ID: "p1", Score: 0.93, Text: "A"},
			{ID: "p2", Score: 0.71, Text: "B"},
		}, passages)
	})

	t.Run("embedding failure aborts the search", func(t *testing.T) {
		index := &fakeIndex{}
		embedder := &stubEmbedder{err: errors.New("embedding endpoint down")}

		s, err := NewSearcher(config.EmbeddingModeEncode, index, embedder)
		require.NoError(t, err)

		_, err = s.Search(ctx, "query", 3)
		assert.Error(t, err)
		assert.Nil(t, index.queryReq)
	})

	t.Run("index error propagates", func(t *testing.T) {
		index := &fakeIndex{queryErr: errors.New("index unavailable")}
		embedder := &stubEmbedder{vector: []float32{0.1}}

		s, err := NewSearcher(config.EmbeddingModeEncode, index, embedder)
		require.NoError(t, err)

		_, err = s.Search(ctx, "query", 3)
		assert.Error(t, err)
	})
}

func TestIntegratedSearcher(t *testing.T) {
	ctx := context.Background()

	t.Run("sends raw text and maps hits", func(t *testing.T) {
		res := &pinecone.SearchRecordsResponse{}
		res.Result.Hits = []pinecone.Hit{
			{Id: "p1", Score: 0.93, Fields: map[string]interface{}{metadataTextField: "A"}},
			{Id: "p2", Score: 0.71, Fields: map[string]interface{}{"other": "ignored"}},
		}
		index := &fakeIndex{searchRes: res}

		s, err := NewSearcher(config.EmbeddingModeIntegrated, index, nil)
		require.NoError(t, err)

		passages, err := s.Search(ctx, "what is theft", 2)
		require.NoError(t, err)

		require.NotNil(t, index.searchReq)
		assert.Equal(t, int32(2), index.searchReq.Query.TopK)
		require.NotNil(t, index.searchReq.Query.Inputs)
		assert.Equal(t, "what is theft", (*index.searchReq.Query.Inputs)["text"])

		require.Len(t, passages, 2)
		assert.Equal(t, models.RetrievedPassage{ID: "p1", Score: 0.93, Text: "A"}, passages[0])
		// Hits without a text field still come back, with empty text
		assert.Equal(t, models.RetrievedPassage{ID: "p2", Score: 0.71, Text: ""}, passages[1])
	})

	t.Run("search error propagates", func(t *testing.T) {
		index := &fakeIndex{searchErr: errors.New("index unavailable")}

		s, err := NewSearcher(config.EmbeddingModeIntegrated, index, nil)
		require.NoError(t, err)

		_, err = s.Search(ctx, "query", 3)
		assert.Error(t, err)
	})
}

func TestPassagesFromMatches(t *testing.T) {
	t.Run("skips nil matches and missing metadata", func(t *testing.T) {
		bare := &pinecone.ScoredVector{Score: 0.5, Vector: &pinecone.Vector{Id: "bare"}}
		matches := []*pinecone.ScoredVector{
			nil,
			scoredVector("p1", 0.9, "A"),
			{Score: 0.8},
			bare,
		}

		passages := passagesFromMatches(matches)
		require.Len(t, passages, 2)
		assert.Equal(t, "p1", passages[0].ID)
		assert.Equal(t, models.RetrievedPassage{ID: "bare", Score: 0.5, Text: ""}, passages[1])
	})

	t.Run("empty input yields empty non-nil slice", func(t *testing.T) {
		passages := passagesFromMatches(nil)
		assert.NotNil(t, passages)
		assert.Empty(t, passages)
	})
}

func TestIndexStatsProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("maps dimension, totals and namespaces", func(t *testing.T) {
		dimension := uint32(384)
		res := &pinecone.DescribeIndexStatsResponse{
			Dimension:        &dimension,
			TotalVectorCount: 1200,
			Namespaces: map[string]*pinecone.NamespaceSummary{
				"":      {VectorCount: 1100},
				"draft": {VectorCount: 100},
				"empty": nil,
			},
		}
		provider := NewIndexStatsProvider(&fakeIndex{statsRes: res})

		stats, err := provider.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(384), stats.Dimension)
		assert.Equal(t, uint32(1200), stats.TotalVectorCount)
		assert.Equal(t, map[string]uint32{"": 1100, "draft": 100}, stats.Namespaces)
	})

	t.Run("missing dimension maps to zero", func(t *testing.T) {
		res := &pinecone.DescribeIndexStatsResponse{TotalVectorCount: 50}
		provider := NewIndexStatsProvider(&fakeIndex{statsRes: res})

		stats, err := provider.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), stats.Dimension)
		assert.Equal(t, uint32(50), stats.TotalVectorCount)
	})

	t.Run("describe failure propagates", func(t *testing.T) {
		provider := NewIndexStatsProvider(&fakeIndex{statsErr: errors.New("unavailable")})

		_, err := provider.Stats(ctx)
		assert.Error(t, err)
	})
}
