package step

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/zefrenchwan/ifc.git/schema"
)

// ErrMetadata is raised when an entity does not match its descriptor.
// It is a programming defect, not a data error.
var ErrMetadata = errors.New("invalid entity metadata")

// Entity is anything written as an instance line
type Entity interface {
	// EntityType returns the descriptor of the entity
	EntityType() *schema.Entity
	// AttributeValues returns one value per written position of the descriptor, in order
	AttributeValues() []Value
}

// Encoder assigns ids to the entities reachable from roots and writes them.
// Ids follow first encounter order of a depth first traversal, starting at 1.
// Only attribute values are followed, so inverse back references are never visited.
type Encoder struct {
	// ids links an entity (by identity) to its instance id
	ids map[Entity]int
	// entities are the visited entities, by id - 1
	entities []Entity
	// values are the attribute values of entities, same order
	values [][]Value
	// logger for traversal events
	logger *zap.SugaredLogger
}

// NewEncoder returns an empty encoder. Nil logger means no log.
func NewEncoder(logger *zap.SugaredLogger) *Encoder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Encoder{
		ids:    make(map[Entity]int),
		logger: logger,
	}
}

// Id returns the id of an entity, and true if entity was visited
func (e *Encoder) Id(entity Entity) (int, bool) {
	if e == nil || IsNil(entity) || checkIdentity(entity) != nil {
		return 0, false
	}

	id, found := e.ids[entity]
	return id, found
}

// Len returns the number of visited entities
func (e *Encoder) Len() int {
	if e == nil {
		return 0
	}

	return len(e.entities)
}

// Entities returns the visited entities, by id order
func (e *Encoder) Entities() []Entity {
	if e == nil {
		return nil
	}

	result := make([]Entity, len(e.entities))
	copy(result, e.entities)
	return result
}

// checkIdentity returns an error for entities that may not be map keys by identity
func checkIdentity(entity Entity) error {
	if kind := reflect.TypeOf(entity).Kind(); kind != reflect.Pointer {
		// identity of non pointers is their value
		return fmt.Errorf("%w: %T is not a pointer", ErrMetadata, entity)
	}

	return nil
}

// describe checks entity against its descriptor and returns its values
func describe(entity Entity) ([]Value, error) {
	descriptor := entity.EntityType()
	if descriptor == nil {
		return nil, fmt.Errorf("%w: %T has no descriptor", ErrMetadata, entity)
	} else if descriptor.IsAbstract() {
		return nil, fmt.Errorf("%w: %T is an instance of abstract %s", ErrMetadata, entity, descriptor.Name())
	}

	values := entity.AttributeValues()
	if len(values) != descriptor.AttributesCount() {
		return nil, fmt.Errorf("%w: %s expects %d attributes, %T returns %d",
			ErrMetadata, descriptor.Name(), descriptor.AttributesCount(), entity, len(values))
	}

	for index, value := range values {
		if value == nil {
			attribute := descriptor.Attributes()[index]
			return nil, fmt.Errorf("%w: %s.%s is nil, use Omitted", ErrMetadata, descriptor.Name(), attribute.Name)
		}
	}

	return values, nil
}

// Add visits roots and every entity they reach, assigning ids on first encounter.
// Entities already visited by a previous call keep their id.
// On error, entities visited during this call are forgotten.
func (e *Encoder) Add(roots ...Entity) error {
	if e == nil {
		return errors.New("nil encoder")
	}

	initialSize := len(e.entities)
	rollback := func() {
		for _, entity := range e.entities[initialSize:] {
			delete(e.ids, entity)
		}

		e.entities = e.entities[:initialSize]
		e.values = e.values[:initialSize]
	}

	// explicit stack, children pushed in reverse to keep attribute order
	var stack []Entity
	for index := len(roots) - 1; index >= 0; index-- {
		if !IsNil(roots[index]) {
			stack = append(stack, roots[index])
		}
	}

	for len(stack) != 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := checkIdentity(current); err != nil {
			rollback()
			return err
		} else if _, found := e.ids[current]; found {
			continue
		}

		values, err := describe(current)
		if err != nil {
			rollback()
			return err
		}

		// id is set before children are expanded, so that cycles end here
		e.entities = append(e.entities, current)
		e.values = append(e.values, values)
		e.ids[current] = len(e.entities)

		var children []Entity
		for _, value := range values {
			value.collect(func(child Entity) {
				if !IsNil(child) {
					children = append(children, child)
				}
			})
		}

		for index := len(children) - 1; index >= 0; index-- {
			if checkIdentity(children[index]) != nil {
				stack = append(stack, children[index])
			} else if _, found := e.ids[children[index]]; !found {
				stack = append(stack, children[index])
			}
		}
	}

	e.logger.Debugw("entities visited", "roots", len(roots), "added", len(e.entities)-initialSize, "total", len(e.entities))
	return nil
}

// Instances returns the instance lines of visited entities, by id
func (e *Encoder) Instances() ([]Instance, error) {
	if e == nil {
		return nil, errors.New("nil encoder")
	}

	result := make([]Instance, len(e.entities))
	for index, entity := range e.entities {
		var builder strings.Builder
		for position, value := range e.values[index] {
			if position != 0 {
				builder.WriteByte(',')
			}

			if err := value.encode(&builder, e); err != nil {
				descriptor := entity.EntityType()
				attribute := descriptor.Attributes()[position]
				return nil, fmt.Errorf("#%d %s.%s: %w", index+1, descriptor.Name(), attribute.Name, err)
			}
		}

		result[index] = Instance{
			Id:         index + 1,
			Keyword:    entity.EntityType().Keyword(),
			Attributes: builder.String(),
		}
	}

	return result, nil
}

// Encode writes the instance lines of visited entities, one per line
func (e *Encoder) Encode(writer io.Writer) error {
	instances, err := e.Instances()
	if err != nil {
		return err
	}

	return WriteInstances(writer, instances)
}

// WriteInstances writes instances, one per line
func WriteInstances(writer io.Writer, instances []Instance) error {
	buffer := bufio.NewWriter(writer)
	for _, instance := range instances {
		if _, err := buffer.WriteString(instance.String()); err != nil {
			return err
		} else if err := buffer.WriteByte('\n'); err != nil {
			return err
		}
	}

	return buffer.Flush()
}

// Serialize is a shortcut to encode everything reachable from roots
func Serialize(logger *zap.SugaredLogger, roots ...Entity) ([]Instance, error) {
	encoder := NewEncoder(logger)
	if err := encoder.Add(roots...); err != nil {
		return nil, err
	}

	return encoder.Instances()
}
