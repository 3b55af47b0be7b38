package storage_test

import (
	"testing"

	"github.com/zefrenchwan/ifc.git/step"
	"github.com/zefrenchwan/ifc.git/storage"
)

func TestInstancesSerde(t *testing.T) {
	instances := []step.Instance{
		{Id: 2, Keyword: "IFCCARTESIANPOINT", Attributes: "(0.,0.)"},
		{Id: 1, Keyword: "IFCPOLYLINE", Attributes: "(#2,#2)"},
	}

	dtos := storage.SerializeInstances(instances)
	if len(dtos) != 2 {
		t.Fatalf("expecting 2 dtos, got %d", len(dtos))
	} else if dtos[1].Keyword != "IFCPOLYLINE" || dtos[1].Attributes != "(#2,#2)" {
		t.Errorf("unexpected dto %v", dtos[1])
	}

	reverse, errReverse := storage.DeserializeInstances(dtos)
	if errReverse != nil {
		t.Fatalf("failing deserialization %s", errReverse.Error())
	} else if len(reverse) != 2 {
		t.Fail()
	} else if reverse[0] != instances[1] || reverse[1] != instances[0] {
		t.Error("instances should be sorted by id")
	}
}

func TestInvalidInstances(t *testing.T) {
	tests := map[string][]storage.InstanceDTO{
		"zero id":    {{Id: 0, Keyword: "IFCWALL"}},
		"negative":   {{Id: -3, Keyword: "IFCWALL"}},
		"duplicate":  {{Id: 1, Keyword: "IFCWALL"}, {Id: 1, Keyword: "IFCSLAB"}},
		"no keyword": {{Id: 1}},
	}

	for name, dtos := range tests {
		if _, err := storage.DeserializeInstances(dtos); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestModelValidation(t *testing.T) {
	valid := storage.NewModelDTO("id", "name", "IFC2X3", []step.Instance{{Id: 1, Keyword: "IFCWALL", Attributes: "$"}})
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error %s", err.Error())
	} else if valid.CreatedAt.IsZero() {
		t.Error("creation date should be set")
	} else if summary := valid.Summary(); len(summary.Instances) != 0 || summary.Id != "id" {
		t.Error("summary should keep values but instances")
	} else if len(valid.Instances) != 1 {
		t.Error("summary should not change source")
	}

	noId := valid
	noId.Id = ""
	if noId.Validate() == nil {
		t.Error("id is mandatory")
	}

	noSchema := valid
	noSchema.Schema = ""
	if noSchema.Validate() == nil {
		t.Error("schema is mandatory")
	}
}
