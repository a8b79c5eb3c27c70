package store

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "tasks.schema.json"

const tasksSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "taskr task collection",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "description", "due_date", "status"],
    "additionalProperties": false,
    "properties": {
      "title": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "due_date": {"type": "string", "format": "date", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
      "status": {"enum": ["pending", "completed"]}
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func collectionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(tasksSchema)); err != nil {
			schemaErr = fmt.Errorf("add task schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded document (maps, slices and strings)
// against the collection schema and returns one error per violation.
func validateDocument(doc interface{}) ([]error, error) {
	schema, err := collectionSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		var problems []error
		appendSchemaErrors(&problems, err)
		return problems, nil
	}
	return nil, nil
}

func appendSchemaErrors(problems *[]error, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*problems = append(*problems, err)
		return
	}
	collectSchemaErrors(problems, ve)
}

func collectSchemaErrors(problems *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*problems = append(*problems, fmt.Errorf("%s: %s", pointerToPath(err.InstanceLocation), err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(problems, cause)
	}
}

// pointerToPath turns "/2/status" into "[2].status".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "(root)"
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		b.WriteString("." + part)
	}
	return strings.TrimPrefix(b.String(), ".")
}
