package ifc

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/step"
)

// Roots returns the entities to serialize for a model: project first, then the other elements in creation order.
// Relationships are only reachable this way, entities never reference them.
func Roots(m *model.Model) []step.Entity {
	if m == nil {
		return nil
	}

	var project step.Entity
	var others []step.Entity
	for _, element := range m.Elements() {
		entity, ok := element.(step.Entity)
		if !ok {
			continue
		} else if _, isProject := entity.(*Project); isProject && project == nil {
			project = entity
		} else {
			others = append(others, entity)
		}
	}

	if project == nil {
		return others
	}

	return append([]step.Entity{project}, others...)
}

// Serialize returns the instances of every element of a model
func Serialize(m *model.Model, logger *zap.SugaredLogger) ([]step.Instance, error) {
	if m == nil {
		return nil, errors.New("nil model")
	} else if logger == nil {
		logger = m.Logger()
	}

	return step.Serialize(logger, Roots(m)...)
}

// NewHeader returns an IFC2X3 file header, file name defaults to the model name
func NewHeader(m *model.Model, fileName string) step.Header {
	if len(fileName) == 0 && m != nil {
		fileName = m.Name + ".ifc"
	}

	return step.NewHeader(fileName, SCHEMA_NAME)
}

// WriteFile writes the exchange file of a model
func WriteFile(writer io.Writer, m *model.Model, header step.Header, logger *zap.SugaredLogger) error {
	instances, err := Serialize(m, logger)
	if err != nil {
		return err
	}

	if len(header.Schemas) == 0 {
		header.Schemas = []string{SCHEMA_NAME}
	}

	m.Logger().Infow("writing model", "model", m.Id, "instances", len(instances))
	return step.WriteFile(writer, header, instances)
}
