package storage

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Key prefixes
const (
	prefixModel     = "m:" // model summary
	prefixInstances = "i:" // model instances
)

// badgerLogger sends badger logs to zap
type badgerLogger struct {
	*zap.SugaredLogger
}

// Warningf logs at warn level
func (l badgerLogger) Warningf(format string, values ...any) {
	l.Warnf(format, values...)
}

// BadgerStore stores models in a badger database, one summary and one instances value per model
type BadgerStore struct {
	db     *badger.DB
	logger *zap.SugaredLogger
}

// NewBadgerStore opens or creates a store at path, an empty path means in memory
func NewBadgerStore(path string, logger *zap.SugaredLogger) (*BadgerStore, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	options := badger.DefaultOptions(path).
		WithLogger(badgerLogger{logger}).
		WithLoggingLevel(badger.WARNING)
	if len(path) == 0 {
		options = options.WithInMemory(true)
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening badger DB: %w", err)
	}

	return &BadgerStore{db: db, logger: logger}, nil
}

func modelKey(id string) []byte {
	return []byte(prefixModel + id)
}

func instancesKey(id string) []byte {
	return []byte(prefixInstances + id)
}

// SaveModel stores the summary and the instances of a model
func (b *BadgerStore) SaveModel(ctx context.Context, model ModelDTO) error {
	if b == nil || b.db == nil {
		return errors.New("nil value")
	} else if err := model.Validate(); err != nil {
		return err
	} else if err := ctx.Err(); err != nil {
		return err
	}

	summary, err := json.Marshal(model.Summary())
	if err != nil {
		return fmt.Errorf("marshaling model: %w", err)
	}

	instances, err := json.Marshal(model.Instances)
	if err != nil {
		return fmt.Errorf("marshaling instances: %w", err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(modelKey(model.Id)); err == nil {
			return fmt.Errorf("%w: %s", ErrModelExists, model.Id)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(modelKey(model.Id), summary); err != nil {
			return err
		}

		return txn.Set(instancesKey(model.Id), instances)
	})

	if err == nil {
		b.logger.Infow("model saved", "model", model.Id, "instances", len(model.Instances))
	}

	return err
}

// LoadModel returns a model and its instances
func (b *BadgerStore) LoadModel(ctx context.Context, id string) (ModelDTO, error) {
	var result ModelDTO
	if b == nil || b.db == nil {
		return result, errors.New("nil value")
	} else if err := ctx.Err(); err != nil {
		return result, err
	}

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(modelKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrModelNotFound, id)
		} else if err != nil {
			return err
		}

		if err := item.Value(func(value []byte) error {
			return json.Unmarshal(value, &result)
		}); err != nil {
			return err
		}

		if item, err = txn.Get(instancesKey(id)); err != nil {
			return fmt.Errorf("instances of %s: %w", id, err)
		}

		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &result.Instances)
		})
	})

	return result, err
}

// ListModels returns the models whose name contains value, all for empty value
func (b *BadgerStore) ListModels(ctx context.Context, value string) ([]ModelDTO, error) {
	if b == nil || b.db == nil {
		return nil, errors.New("nil value")
	}

	var result []ModelDTO
	err := b.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(prefixModel)
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var current ModelDTO
			if err := it.Item().Value(func(raw []byte) error {
				return json.Unmarshal(raw, &current)
			}); err != nil {
				return err
			}

			if strings.Contains(current.Name, value) {
				result = append(result, current)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	slices.SortFunc(result, func(a, b ModelDTO) int {
		if byDate := a.CreatedAt.Compare(b.CreatedAt); byDate != 0 {
			return byDate
		}

		return cmp.Compare(a.Id, b.Id)
	})

	return result, nil
}

// DeleteModel removes the summary and the instances of a model
func (b *BadgerStore) DeleteModel(ctx context.Context, id string) error {
	if b == nil || b.db == nil {
		return errors.New("nil value")
	} else if err := ctx.Err(); err != nil {
		return err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(modelKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrModelNotFound, id)
		} else if err != nil {
			return err
		}

		if err := txn.Delete(modelKey(id)); err != nil {
			return err
		}

		return txn.Delete(instancesKey(id))
	})

	if err == nil {
		b.logger.Infow("model deleted", "model", id)
	}

	return err
}

// Close closes the database
func (b *BadgerStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	return err
}
