package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"

	"github.com/lawmate-ai/backend/config"
	"github.com/lawmate-ai/backend/models"
	"github.com/lawmate-ai/backend/services/embedding"
)

// metadataTextField is the metadata key the ingestion script stores the
// passage text under.
const metadataTextField = "text"

// vectorIndex is the slice of pinecone.IndexConnection the searchers use.
type vectorIndex interface {
	QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error)
	SearchRecords(ctx context.Context, in *pinecone.SearchRecordsRequest) (*pinecone.SearchRecordsResponse, error)
	DescribeIndexStats(ctx context.Context) (*pinecone.DescribeIndexStatsResponse, error)
}

// Connect resolves the index host and opens a connection to it.
func Connect(ctx context.Context, cfg config.PineconeConfig) (*pinecone.IndexConnection, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone client: %w", err)
	}

	idx, err := client.DescribeIndex(ctx, cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index %q: %w", cfg.Index, err)
	}

	conn, err := client.Index(pinecone.NewIndexConnParams{
		Host:      idx.Host,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to index %q: %w", cfg.Index, err)
	}
	return conn, nil
}

// NewSearcher builds the searcher for the configured embedding strategy.
// In encode mode the query is embedded client-side and the index is queried
// by vector; in integrated mode the raw text goes to an index with
// server-side embedding.
func NewSearcher(mode string, index vectorIndex, embedder embedding.Embedder) (Searcher, error) {
	switch mode {
	case config.EmbeddingModeEncode:
		if embedder == nil {
			return nil, fmt.Errorf("encode mode requires an embedder")
		}
		return &encodeSearcher{index: index, embedder: embedder}, nil
	case config.EmbeddingModeIntegrated:
		return &integratedSearcher{index: index}, nil
	default:
		return nil, fmt.Errorf("unknown embedding mode %q", mode)
	}
}

// encodeSearcher embeds the query and queries the index by vector values.
type encodeSearcher struct {
	index    vectorIndex
	embedder embedding.Embedder
}

func (s *encodeSearcher) Search(ctx context.Context, query string, topK int) ([]models.RetrievedPassage, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	res, err := s.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("index query failed: %w", err)
	}

	return passagesFromMatches(res.Matches), nil
}

// integratedSearcher sends the raw text to an integrated-embedding index.
type integratedSearcher struct {
	index vectorIndex
}

func (s *integratedSearcher) Search(ctx context.Context, query string, topK int) ([]models.RetrievedPassage, error) {
	res, err := s.index.SearchRecords(ctx, &pinecone.SearchRecordsRequest{
		Query: pinecone.SearchRecordsQuery{
			TopK:   int32(topK),
			Inputs: &map[string]interface{}{"text": query},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("record search failed: %w", err)
	}

	passages := make([]models.RetrievedPassage, 0, len(res.Result.Hits))
	for _, hit := range res.Result.Hits {
		text, _ := hit.Fields[metadataTextField].(string)
		passages = append(passages, models.RetrievedPassage{
			ID:    hit.Id,
			Score: hit.Score,
			Text:  text,
		})
	}
	return passages, nil
}

// passagesFromMatches converts scored vectors to passages, best score first.
func passagesFromMatches(matches []*pinecone.ScoredVector) []models.RetrievedPassage {
	sort.SliceStable(matches, func(i, j int) bool {
		var is, js float32
		if matches[i] != nil {
			is = matches[i].Score
		}
		if matches[j] != nil {
			js = matches[j].Score
		}
		return is > js
	})

	passages := make([]models.RetrievedPassage, 0, len(matches))
	for _, m := range matches {
		if m == nil || m.Vector == nil {
			continue
		}
		text := ""
		if m.Vector.Metadata != nil {
			text = m.Vector.Metadata.GetFields()[metadataTextField].GetStringValue()
		}
		passages = append(passages, models.RetrievedPassage{
			ID:    m.Vector.Id,
			Score: m.Score,
			Text:  text,
		})
	}
	return passages
}

// IndexStatsProvider implements StatsProvider against the index connection.
type IndexStatsProvider struct {
	index vectorIndex
}

// NewIndexStatsProvider wraps an index connection for stats reporting.
func NewIndexStatsProvider(index vectorIndex) *IndexStatsProvider {
	return &IndexStatsProvider{index: index}
}

// Stats reports dimension, total vector count and per-namespace counts.
func (p *IndexStatsProvider) Stats(ctx context.Context) (*IndexStats, error) {
	res, err := p.index.DescribeIndexStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index stats: %w", err)
	}

	namespaces := make(map[string]uint32, len(res.Namespaces))
	for name, summary := range res.Namespaces {
		if summary != nil {
			namespaces[name] = summary.VectorCount
		}
	}

	// Dimension is unset for integrated-embedding indexes
	var dimension uint32
	if res.Dimension != nil {
		dimension = *res.Dimension
	}
	return &IndexStats{
		Dimension:        dimension,
		TotalVectorCount: res.TotalVectorCount,
		Namespaces:       namespaces,
	}, nil
}
