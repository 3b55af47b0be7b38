package storage

import "context"

// Store persists serialized models
type Store interface {
	// SaveModel stores a new model, ErrModelExists if its id is already stored
	SaveModel(ctx context.Context, model ModelDTO) error
	// LoadModel returns a model and its instances, ErrModelNotFound if missing
	LoadModel(ctx context.Context, id string) (ModelDTO, error)
	// ListModels returns the models whose name contains value (all for empty value), without instances.
	// Result is sorted by creation date, then id.
	ListModels(ctx context.Context, value string) ([]ModelDTO, error)
	// DeleteModel removes a model, ErrModelNotFound if missing
	DeleteModel(ctx context.Context, id string) error
	// Close releases the store
	Close() error
}

var (
	_ Store = (*Dao)(nil)
	_ Store = (*BadgerStore)(nil)
)
