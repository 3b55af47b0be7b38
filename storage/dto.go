package storage

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/zefrenchwan/ifc.git/step"
)

// ModelDTO is a serialized model, as stored
type ModelDTO struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Schema    string    `json:"schema"`
	CreatedAt time.Time `json:"created_at"`
	// Instances are empty when listing models
	Instances []InstanceDTO `json:"instances,omitempty"`
}

// InstanceDTO is a single instance line, attributes are kept encoded
type InstanceDTO struct {
	Id         int    `json:"id"`
	Keyword    string `json:"keyword"`
	Attributes string `json:"attributes"`
}

// NewModelDTO returns the dto of a serialized model, created now
func NewModelDTO(id, name, schema string, instances []step.Instance) ModelDTO {
	return ModelDTO{
		Id:        id,
		Name:      name,
		Schema:    schema,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Instances: SerializeInstances(instances),
	}
}

// Summary returns the dto without its instances
func (m ModelDTO) Summary() ModelDTO {
	m.Instances = nil
	return m
}

// Validate returns an error if the dto may not be stored
func (m ModelDTO) Validate() error {
	var globalErr error
	if len(m.Id) == 0 {
		globalErr = errors.Join(globalErr, errors.New("empty model id"))
	}

	if len(m.Schema) == 0 {
		globalErr = errors.Join(globalErr, errors.New("empty schema"))
	}

	if _, err := DeserializeInstances(m.Instances); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	return globalErr
}

// SerializeInstances returns the dtos of instances
func SerializeInstances(instances []step.Instance) []InstanceDTO {
	result := make([]InstanceDTO, len(instances))
	for index, instance := range instances {
		result[index] = InstanceDTO{
			Id:         instance.Id,
			Keyword:    instance.Keyword,
			Attributes: instance.Attributes,
		}
	}

	return result
}

// DeserializeInstances returns the instances of dtos, sorted by id.
// Ids should be positive and unique, keywords non empty.
func DeserializeInstances(dtos []InstanceDTO) ([]step.Instance, error) {
	var globalErr error
	seen := make(map[int]bool, len(dtos))
	result := make([]step.Instance, 0, len(dtos))
	for _, dto := range dtos {
		switch {
		case dto.Id <= 0:
			globalErr = errors.Join(globalErr, fmt.Errorf("invalid instance id %d", dto.Id))
		case seen[dto.Id]:
			globalErr = errors.Join(globalErr, fmt.Errorf("instance #%d defined twice", dto.Id))
		case len(dto.Keyword) == 0:
			globalErr = errors.Join(globalErr, fmt.Errorf("instance #%d has no keyword", dto.Id))
		default:
			seen[dto.Id] = true
			result = append(result, step.Instance{Id: dto.Id, Keyword: dto.Keyword, Attributes: dto.Attributes})
		}
	}

	if globalErr != nil {
		return nil, globalErr
	}

	slices.SortFunc(result, func(a, b step.Instance) int { return a.Id - b.Id })
	return result, nil
}
