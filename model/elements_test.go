package model_test

import (
	"errors"
	"testing"

	"github.com/zefrenchwan/ifc.git/model"
)

type element string

func (e element) GlobalId() string { return string(e) }

func TestRegisterNeedsClaim(t *testing.T) {
	m := model.NewModel("test")

	id, err := m.ClaimGlobalId("")
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Register(element("0000000000000000000001")); !errors.Is(err, model.ErrInvalidArgument) {
		t.Error("unclaimed id should not register")
	} else if err := m.Register(element(id)); err != nil {
		t.Errorf("claimed id should register: %s", err.Error())
	} else if err := m.Register(element(id)); !errors.Is(err, model.ErrUniqueness) {
		t.Error("registering twice should fail")
	} else if m.Len() != 1 {
		t.Error("expecting one element")
	}

	if value, found := m.Element(id); !found || value.GlobalId() != id {
		t.Error("element should be found by global id")
	}
}

func TestElementsKeepOrder(t *testing.T) {
	m := model.NewModel("test")

	var ids []string
	for index := 0; index < 5; index++ {
		if id, err := m.ClaimGlobalId(""); err != nil {
			t.Fatal(err)
		} else if err := m.Register(element(id)); err != nil {
			t.Fatal(err)
		} else {
			ids = append(ids, id)
		}
	}

	for index, value := range m.Elements() {
		if value.GlobalId() != ids[index] {
			t.Errorf("unexpected element at %d", index)
		}
	}

	if !m.Unregister(ids[2]) {
		t.Error("unregister should find element")
	} else if m.Unregister(ids[2]) {
		t.Error("unregister twice should fail")
	} else if !m.Contains(model.GLOBAL_ID, ids[2]) {
		t.Error("unregister should keep the id claimed")
	} else if _, err := m.ClaimGlobalId(ids[2]); !errors.Is(err, model.ErrUniqueness) {
		t.Error("id of an unregistered element should not be claimed again")
	} else if elements := m.Elements(); len(elements) != 4 || elements[2].GlobalId() != ids[3] {
		t.Error("order should be kept after removal")
	}
}
