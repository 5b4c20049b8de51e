package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nhle/todo/internal/model"
)

//go:embed tasks.schema.json
var taskSchemaJSON string

const taskSchemaURL = "tasks.schema.json"

// taskSchema describes the on-disk collection: an array of objects with
// exactly title, completed and created_at. Unknown fields are rejected.
var taskSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchemaJSON)); err != nil {
		panic(fmt.Sprintf("loading task schema: %v", err))
	}
	schema, err := compiler.Compile(taskSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compiling task schema: %v", err))
	}
	return schema
}

// SchemaViolation is one failed schema rule, located by its instance path.
type SchemaViolation struct {
	Path    string
	Message string
}

func (v SchemaViolation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// SchemaError lists every violation found while validating a task file.
type SchemaError struct {
	Violations []SchemaViolation
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "invalid task collection: " + strings.Join(parts, "; ")
}

// decodeTasks validates data against the task schema and decodes it.
func decodeTasks(data []byte) ([]model.Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if err := taskSchema.Validate(doc); err != nil {
		return nil, toSchemaError(err)
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	// Offsets other than Z are accepted but held and saved as UTC.
	for i := range tasks {
		tasks[i].CreatedAt = tasks[i].CreatedAt.UTC()
	}
	return tasks, nil
}

func toSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	se := &SchemaError{}
	collectViolations(se, ve)
	return se
}

func collectViolations(se *SchemaError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		se.Violations = append(se.Violations, SchemaViolation{
			Path:    jsonPointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectViolations(se, cause)
	}
}

// jsonPointerToPath turns "/0/created_at" into "[0].created_at".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
