package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Dao stores models in postgresql
type Dao struct {
	// pool to deal with multiple connections
	pool *pgxpool.Pool
	// logger to trace operations
	logger *zap.SugaredLogger
}

// NewDao builds a new dao to connect a database via its url
func NewDao(ctx context.Context, url string, logger *zap.SugaredLogger) (*Dao, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	pool, errPool := pgxpool.New(ctx, url)
	if errPool != nil {
		return nil, fmt.Errorf("dao creation failed: %w", errPool)
	}

	return &Dao{pool: pool, logger: logger}, nil
}

// SaveModel inserts the model line, then copies its instances, in a single transaction
func (d *Dao) SaveModel(ctx context.Context, model ModelDTO) error {
	if d == nil || d.pool == nil {
		return errors.New("nil value")
	} else if err := model.Validate(); err != nil {
		return err
	}

	tx, errTx := d.pool.Begin(ctx)
	if errTx != nil {
		return errTx
	}

	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, queryInsertModel(), model.Id, model.Name, model.Schema, model.CreatedAt); err != nil {
		return translateError(err, model.Id)
	}

	copied, errCopy := tx.CopyFrom(ctx, instancesIdentifier, instancesColumns, copySource(model))
	if errCopy != nil {
		return translateError(errCopy, model.Id)
	} else if int(copied) != len(model.Instances) {
		return fmt.Errorf("copied %d instances out of %d", copied, len(model.Instances))
	}

	if err := tx.Commit(ctx); err != nil {
		return translateError(err, model.Id)
	}

	d.logger.Infow("model saved", "model", model.Id, "instances", copied)
	return nil
}

// LoadModel returns a model and its instances
func (d *Dao) LoadModel(ctx context.Context, id string) (ModelDTO, error) {
	var result ModelDTO
	if d == nil || d.pool == nil {
		return result, errors.New("nil value")
	}

	models, errModels := d.pool.Query(ctx, queryModel(), id)
	if errModels != nil {
		return result, translateError(errModels, id)
	}

	found, errFound := collectModels(models)
	if errFound != nil {
		return result, translateError(errFound, id)
	} else if len(found) == 0 {
		return result, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}

	result = found[0]
	instances, errInstances := d.pool.Query(ctx, queryInstances(), id)
	if errInstances != nil {
		return result, translateError(errInstances, id)
	}

	if values, err := collectInstances(instances); err != nil {
		return result, err
	} else {
		result.Instances = values
	}

	d.logger.Debugw("model loaded", "model", id, "instances", len(result.Instances))
	return result, nil
}

// ListModels returns the models whose name contains value, all for empty value
func (d *Dao) ListModels(ctx context.Context, value string) ([]ModelDTO, error) {
	if d == nil || d.pool == nil {
		return nil, errors.New("nil value")
	}

	var rows pgx.Rows
	var errQuery error
	if len(value) == 0 {
		rows, errQuery = d.pool.Query(ctx, queryForModels(false))
	} else {
		rows, errQuery = d.pool.Query(ctx, queryForModels(true), value)
	}

	if errQuery != nil {
		return nil, translateError(errQuery, "")
	}

	return collectModels(rows)
}

// DeleteModel removes a model and its instances
func (d *Dao) DeleteModel(ctx context.Context, id string) error {
	if d == nil || d.pool == nil {
		return errors.New("nil value")
	}

	tag, errExec := d.pool.Exec(ctx, queryDeleteModel(), id)
	if errExec != nil {
		return translateError(errExec, id)
	} else if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}

	d.logger.Infow("model deleted", "model", id)
	return nil
}

// Close closes the dao and the underlying pool
func (d *Dao) Close() error {
	if d != nil && d.pool != nil {
		d.pool.Close()
	}

	return nil
}
