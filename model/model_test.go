package model_test

import (
	"errors"
	"testing"

	"github.com/zefrenchwan/ifc.git/guid"
	"github.com/zefrenchwan/ifc.git/model"
)

const applicationConstraint model.Constraint = "IfcApplication.FullNameVersion"

func TestClaimTwiceFails(t *testing.T) {
	m := model.NewModel("test")

	if err := m.Claim(applicationConstraint, "Editor", "1.0"); err != nil {
		t.Errorf("first claim should succeed: %s", err.Error())
	} else if err := m.Claim(applicationConstraint, "Editor", "2.0"); err != nil {
		t.Error("different tuple should succeed")
	}

	err := m.Claim(applicationConstraint, "Editor", "1.0")
	if err == nil {
		t.Fatal("second claim should fail")
	} else if !errors.Is(err, model.ErrUniqueness) {
		t.Error("expecting uniqueness error")
	} else if errors.Is(err, model.ErrInvalidArgument) {
		t.Error("uniqueness error is not an argument error")
	} else if !model.IsUniquenessError(err) {
		t.Fail()
	}

	var constraintErr model.ConstraintError
	if !errors.As(err, &constraintErr) {
		t.Error("expecting a constraint error")
	} else if constraintErr.Source() != string(applicationConstraint) {
		t.Fail()
	} else if constraintErr.Value() != "Editor, 1.0" {
		t.Errorf("unexpected value %s", constraintErr.Value())
	}

	if m.Count(applicationConstraint) != 2 {
		t.Error("failed claim should not change the registry")
	}
}

func TestTupleKeysDoNotCollide(t *testing.T) {
	m := model.NewModel("test")

	if err := m.Claim(applicationConstraint, "a,b", "c"); err != nil {
		t.Fail()
	} else if err := m.Claim(applicationConstraint, "a", "b,c"); err != nil {
		t.Error("tuples with same concatenation should differ")
	}
}

func TestResetAllowsReuse(t *testing.T) {
	m := model.NewModel("test")
	id := guid.New()

	if _, err := m.ClaimGlobalId(id); err != nil {
		t.Fatal(err)
	} else if _, err := m.ClaimGlobalId(id); !errors.Is(err, model.ErrUniqueness) {
		t.Error("reusing a global id should fail")
	}

	m.ClearConstraint(model.GLOBAL_ID)
	if _, err := m.ClaimGlobalId(id); err != nil {
		t.Error("after clear, reuse should succeed")
	}

	m.Claim(applicationConstraint, "x")
	m.Reset()
	if len(m.Constraints()) != 0 {
		t.Error("reset should clear all constraints")
	} else if _, err := m.ClaimGlobalId(id); err != nil {
		t.Error("after reset, reuse should succeed")
	}
}

func TestModelsAreIndependent(t *testing.T) {
	first := model.NewModel("first")
	second := model.NewModel("second")
	id := guid.New()

	if _, err := first.ClaimGlobalId(id); err != nil {
		t.Fail()
	} else if _, err := second.ClaimGlobalId(id); err != nil {
		t.Error("models should not share registries")
	}
}

func TestGlobalIdValidation(t *testing.T) {
	m := model.NewModel("test")

	if _, err := m.ClaimGlobalId("not a global id"); !errors.Is(err, model.ErrInvalidArgument) {
		t.Error("malformed id should be an argument error")
	} else if m.Count(model.GLOBAL_ID) != 0 {
		t.Error("malformed id should not be registered")
	}

	generated, err := m.ClaimGlobalId("")
	if err != nil {
		t.Fatal(err)
	} else if guid.Validate(generated) != nil {
		t.Error("generated id should be valid")
	} else if !m.Contains(model.GLOBAL_ID, generated) {
		t.Error("generated id should be claimed")
	} else if err := m.CheckGlobalId(generated); !errors.Is(err, model.ErrUniqueness) {
		t.Error("check should detect used id")
	} else if err := m.CheckGlobalId(""); err != nil {
		t.Error("empty id is valid for check")
	}

	m.Release(model.GLOBAL_ID, generated)
	if m.Contains(model.GLOBAL_ID, generated) {
		t.Error("released id should be free")
	}
}
