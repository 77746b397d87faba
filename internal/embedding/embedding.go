// Package embedding wraps the text-embedding model used for both indexing
// and querying. The same model and dimensionality must be used on both
// sides; a mismatch is a configuration error, not a recoverable one.
package embedding

import (
	"context"
	"fmt"
)

// Provider converts text into dense vectors. Implementations must be safe
// for concurrent use by multiple in-flight retrieval calls.
type Provider interface {
	// Embed returns the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one vector per input text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the fixed output dimensionality.
	Dimension() int
}

// DimensionError reports a vector whose length does not match the configured
// dimensionality. It indicates the index and the query side are running
// different model versions.
type DimensionError struct {
	Model string
	Want  int
	Got   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch for model %s: want %d, got %d", e.Model, e.Want, e.Got)
}
