package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider on the Gemini embedding API. The
// underlying client is created lazily on first use, exactly once, so the
// provider can be constructed at startup without network access.
type GeminiProvider struct {
	apiKey string
	model  string
	dim    int

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGeminiProvider creates a provider for the given embedding model. dim is
// the expected output dimensionality; every returned vector is checked
// against it.
func NewGeminiProvider(apiKey, model string, dim int) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}
	return &GeminiProvider{apiKey: apiKey, model: model, dim: dim}, nil
}

// Dimension returns the fixed output dimensionality.
func (p *GeminiProvider) Dimension() int {
	return p.dim
}

func (p *GeminiProvider) init(ctx context.Context) (*genai.Client, error) {
	p.once.Do(func() {
		p.client, p.initErr = genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	})
	if p.initErr != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", p.initErr)
	}
	return p.client, nil
}

// Embed returns the vector for a single text.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch returns one vector per input text, in order.
func (p *GeminiProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	client, err := p.init(ctx)
	if err != nil {
		return nil, err
	}

	em := client.EmbeddingModel(p.model)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %d texts: %w", len(texts), err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("empty embedding at index %d", i)
		}
		if len(e.Values) != p.dim {
			return nil, &DimensionError{Model: p.model, Want: p.dim, Got: len(e.Values)}
		}
		vectors[i] = e.Values
	}
	return vectors, nil
}

// Close releases the underlying client, if it was ever created.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
