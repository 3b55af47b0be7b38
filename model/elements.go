package model

import (
	"errors"
	"slices"
)

// Element is a rooted entity of a model, identified by its global id
type Element interface {
	// GlobalId returns the compressed global id of the element
	GlobalId() string
}

// Register adds an element to the model.
// Its global id should be claimed already, registering twice the same id fails.
func (m *Model) Register(element Element) error {
	if m == nil || element == nil {
		return errors.New("nil value")
	}

	id := element.GlobalId()
	if !m.Contains(GLOBAL_ID, id) {
		return NewArgumentValueError(string(GLOBAL_ID), "global id not claimed in model", id)
	} else if m.elements == nil {
		m.elements = make(map[string]Element)
	}

	if _, found := m.elements[id]; found {
		return NewUniquenessError(GLOBAL_ID, id)
	}

	m.elements[id] = element
	m.order = append(m.order, id)
	return nil
}

// Element returns the element with that global id, if any
func (m *Model) Element(globalId string) (Element, bool) {
	if m == nil || m.elements == nil {
		return nil, false
	}

	element, found := m.elements[globalId]
	return element, found
}

// Elements returns the registered elements, in registration order
func (m *Model) Elements() []Element {
	if m == nil {
		return nil
	}

	result := make([]Element, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.elements[id])
	}

	return result
}

// Len returns the number of registered elements
func (m *Model) Len() int {
	if m == nil {
		return 0
	}

	return len(m.order)
}

// Unregister removes an element from the registered elements.
// Its global id stays claimed: other entities may still reference the element.
// Callers that know the element is unreachable release the id with Release.
func (m *Model) Unregister(globalId string) bool {
	if m == nil || m.elements == nil {
		return false
	} else if _, found := m.elements[globalId]; !found {
		return false
	}

	delete(m.elements, globalId)
	m.order = slices.DeleteFunc(m.order, func(id string) bool { return id == globalId })
	return true
}
