package schema_test

import (
	"slices"
	"testing"

	"github.com/zefrenchwan/ifc.git/schema"
)

func names(attributes []schema.Attribute) []string {
	result := make([]string, len(attributes))
	for index, attribute := range attributes {
		result[index] = attribute.Name
	}

	return result
}

func buildTestDictionary(t *testing.T) schema.Dictionary {
	d := schema.NewDictionary("TEST")
	d.MustDefine("Root", "", true, schema.Explicit("Id"), schema.Optional("Name"))
	d.MustDefine("Middle", "Root", true, schema.Optional("Kind"), schema.Inverse("Parts"))
	d.MustDefine("Leaf", "Middle", false, schema.Explicit("Size"), schema.Derive("Volume"))
	d.MustDefine("Computed", "Middle", false, schema.Derive("Kind"))
	return d
}

func TestFlattenedAttributesOrder(t *testing.T) {
	d := buildTestDictionary(t)

	leaf := d.Entity("leaf")
	if leaf == nil {
		t.Fatal("lookup should be case insensitive")
	}

	expected := []string{"Id", "Name", "Kind", "Size"}
	if slices.Compare(expected, names(leaf.Attributes())) != 0 {
		t.Errorf("unexpected order %v", names(leaf.Attributes()))
	} else if leaf.AttributesCount() != 4 {
		t.Fail()
	}

	if slices.Compare([]string{"Parts"}, names(leaf.Inverses())) != 0 {
		t.Error("inverse should be inherited but not written")
	} else if slices.Compare([]string{"Volume"}, names(leaf.Derived())) != 0 {
		t.Error("derived attribute with no inherited position should not be written")
	}

	if leaf.Keyword() != "LEAF" {
		t.Fail()
	} else if !leaf.IsSubtypeOf("ROOT") || leaf.IsSubtypeOf("Computed") {
		t.Fail()
	}

	chain := leaf.Chain()
	if len(chain) != 3 || chain[0].Name() != "Root" || chain[2].Name() != "Leaf" {
		t.Error("chain should go from root to leaf")
	}
}

func TestDerivedRedeclarationKeepsPosition(t *testing.T) {
	d := buildTestDictionary(t)

	computed := d.Entity("Computed")
	attributes := computed.Attributes()
	if slices.Compare([]string{"Id", "Name", "Kind"}, names(attributes)) != 0 {
		t.Errorf("unexpected attributes %v", names(attributes))
	} else if attributes[2].Kind != schema.DERIVED {
		t.Error("redeclared attribute should be derived")
	}

	// supertype is untouched
	middle := d.Entity("Middle")
	if middle.Attributes()[2].Kind != schema.EXPLICIT {
		t.Error("redeclaration changed supertype")
	}
}

func TestSubtypes(t *testing.T) {
	d := buildTestDictionary(t)

	if d.DirectSubtypes("unknown") != nil {
		t.Error("when not present, return nil")
	} else if values := d.DirectSubtypes("Leaf"); values == nil || len(values) != 0 {
		t.Error("when no subtype, return empty")
	} else if slices.Compare([]string{"Computed", "Leaf"}, d.DirectSubtypes("middle")) != 0 {
		t.Fail()
	} else if d.DirectSupertype("Leaf") != "Middle" {
		t.Fail()
	} else if d.DirectSupertype("Root") != "" {
		t.Fail()
	}
}

func TestDefinitionErrors(t *testing.T) {
	d := buildTestDictionary(t)

	if _, err := d.Define("Leaf", "", false); err == nil {
		t.Error("duplicate entity should fail")
	} else if _, err := d.Define("Orphan", "Missing", false); err == nil {
		t.Error("unknown supertype should fail")
	} else if _, err := d.Define("Shadow", "Root", false, schema.Explicit("Name")); err == nil {
		t.Error("explicit attribute shadowing an inherited one should fail")
	} else if _, err := d.Define("Twice", "Root", false, schema.Explicit("A"), schema.Optional("a")); err == nil {
		t.Error("attribute declared twice should fail")
	} else if d.Entity("Shadow") != nil || d.Entity("Twice") != nil {
		t.Error("failed definitions should not be registered")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustDefine should panic on misconfiguration")
		}
	}()

	d.MustDefine("Leaf", "", false)
}
