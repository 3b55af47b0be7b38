package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// collectModels reads model lines (id, name, schema, creation date)
func collectModels(rows pgx.Rows) ([]ModelDTO, error) {
	defer rows.Close()

	var globalErr error
	var result []ModelDTO
	for rows.Next() {
		var current ModelDTO
		var createdAt time.Time
		if err := rows.Scan(&current.Id, &current.Name, &current.Schema, &createdAt); err != nil {
			globalErr = errors.Join(globalErr, err)
			continue
		}

		current.CreatedAt = createdAt.UTC()
		result = append(result, current)
	}

	if err := rows.Err(); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	return result, globalErr
}

// collectInstances reads instance lines (id, keyword, attributes), ordered by id
func collectInstances(rows pgx.Rows) ([]InstanceDTO, error) {
	result, err := pgx.CollectRows(rows, pgx.RowToStructByPos[InstanceDTO])
	if err != nil {
		return nil, fmt.Errorf("reading instances: %w", err)
	}

	return result, nil
}

// copySource returns the rows to copy for the instances of a model
func copySource(model ModelDTO) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(model.Instances), func(index int) ([]any, error) {
		instance := model.Instances[index]
		return []any{model.Id, instance.Id, instance.Keyword, instance.Attributes}, nil
	})
}
