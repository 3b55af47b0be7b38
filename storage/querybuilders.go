package storage

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

const (
	// STORAGE_SCHEMA is the postgresql schema of stored models
	STORAGE_SCHEMA = "sifc"
	// MODELS_TABLE contains a line per model
	MODELS_TABLE = "models"
	// INSTANCES_TABLE contains a line per instance of each model
	INSTANCES_TABLE = "instances"
)

// instancesIdentifier is the instances table for copy operations
var instancesIdentifier = pgx.Identifier{STORAGE_SCHEMA, INSTANCES_TABLE}

// instancesColumns are the copied columns, in order
var instancesColumns = []string{"model_id", "instance_id", "keyword", "attributes"}

// queryInsertModel returns the query to insert a model line
func queryInsertModel() string {
	return `
	insert into sifc.models(model_id, model_name, schema_name, created_at)
	values ($1, $2, $3, $4)
	`
}

// queryModel returns the query to load a model line by id
func queryModel() string {
	return `
	select MOD.model_id, MOD.model_name, MOD.schema_name, MOD.created_at
	from sifc.models MOD
	where MOD.model_id = $1
	`
}

// queryInstances returns the query to load the instances of a model, by id
func queryInstances() string {
	return `
	select INS.instance_id, INS.keyword, INS.attributes
	from sifc.instances INS
	where INS.model_id = $1
	order by INS.instance_id
	`
}

// queryForModels returns the query to list models, with their name containing $1 if filtered
func queryForModels(filtered bool) string {
	var builder strings.Builder
	builder.WriteString(`
	select MOD.model_id, MOD.model_name, MOD.schema_name, MOD.created_at
	from sifc.models MOD
	`)

	if filtered {
		builder.WriteString("where strpos(MOD.model_name, $1) > 0\n")
	}

	builder.WriteString("order by MOD.created_at, MOD.model_id")
	return builder.String()
}

// queryDeleteModel returns the query to delete a model, instances are deleted in cascade
func queryDeleteModel() string {
	return "delete from sifc.models where model_id = $1"
}
