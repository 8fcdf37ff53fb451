package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// ValidationError reports a schema violation, naming the offending fields.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema violation on %s: %v", strings.Join(e.Fields, ", "), e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// compiled schemas, keyed by name. Compilation happens once per process.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// ValidateMentorRequest checks raw JSON against the mentor request schema
// and returns the typed request. Validation is deterministic and has no
// side effects.
func ValidateMentorRequest(raw json.RawMessage) (*MentorRequest, error) {
	if err := validate("mentor-request", mentorRequestDefinition, raw); err != nil {
		return nil, err
	}
	var req MentorRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, &ValidationError{Fields: []string{"(root)"}, Err: err}
	}
	return &req, nil
}

// ValidateMentorResponse checks raw JSON against the mentor response schema
// and returns the typed response. All declared fields are preserved.
func ValidateMentorResponse(raw json.RawMessage) (*MentorResponse, error) {
	if err := validate("mentor-response", mentorResponseDefinition, raw); err != nil {
		return nil, err
	}
	var resp MentorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ValidationError{Fields: []string{"(root)"}, Err: err}
	}
	return &resp, nil
}

func validate(name string, definition map[string]any, raw json.RawMessage) error {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return &ValidationError{
			Fields: []string{"(root)"},
			Err:    fmt.Errorf("invalid JSON: %w", err),
		}
	}

	schema, err := compiledSchema(name, definition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &ValidationError{Fields: offendingFields(ve), Err: err}
		}
		return &ValidationError{Fields: []string{"(root)"}, Err: err}
	}
	return nil
}

func compiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain unmarshaled document, so round-trip the
	// definition map through JSON.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var doc any
	if err := json.Unmarshal(defBytes, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	schema, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	compiledSchemas.Store(name, schema)
	return schema, nil
}

// offendingFields walks the validation error tree and collects the instance
// locations of the leaf causes. Missing required properties are reported by
// the property name rather than the (empty) parent location.
func offendingFields(ve *jsonschema.ValidationError) []string {
	seen := map[string]bool{}
	var fields []string

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}

		var names []string
		if req, ok := e.ErrorKind.(*kind.Required); ok {
			for _, missing := range req.Missing {
				names = append(names, joinLocation(append(e.InstanceLocation, missing)))
			}
		} else {
			names = append(names, joinLocation(e.InstanceLocation))
		}

		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				fields = append(fields, n)
			}
		}
	}
	walk(ve)

	if len(fields) == 0 {
		fields = []string{"(root)"}
	}
	return fields
}

func joinLocation(loc []string) string {
	if len(loc) == 0 {
		return "(root)"
	}
	return strings.Join(loc, "/")
}
