package jsonstore

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// taskListSchema describes the on-disk document: an array of records that
// each carry a typed id, text and done field.
const taskListSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "done"],
    "properties": {
      "id":   {"type": "integer", "minimum": 0, "maximum": 4294967295},
      "text": {"type": "string"},
      "done": {"type": "boolean"}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("tasks.schema.json", taskListSchema)

// validateDocument checks a decoded JSON value against the task list schema
// and flattens the first leaf causes into a single readable error.
func validateDocument(doc interface{}) error {
	err := compiledSchema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var msgs []string
	collectSchemaErrors(ve, &msgs)
	if len(msgs) == 0 {
		return fmt.Errorf("%s", ve.Message)
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func collectSchemaErrors(err *jsonschema.ValidationError, out *[]string) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, out)
	}
}
