package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const snapshotSchemaURL = "schema://quick-quiz-snapshot.json"

// SnapshotSchema describes the shape of the quick-quiz hand-off object.
// Enum domains are not part of the shape: out-of-domain values are dropped later.
var SnapshotSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"hasApis":              map[string]any{"type": "string"},
		"dataAccess":           map[string]any{"type": "string"},
		"processDocumentation": map[string]any{"type": "string"},
		"automationExperience": map[string]any{"type": "string"},
		"mainBlocker":          map[string]any{"type": "string"},
		"quickCheckScore":      map[string]any{"type": "integer"},
		"quickCheckLevel":      map[string]any{"type": "string"},
		"source":               map[string]any{"type": "string"},
		"timestamp":            map[string]any{"type": "string"},
	},
}

var (
	snapshotSchemaOnce     sync.Once
	snapshotSchemaCompiled *jsonschema.Schema
	snapshotSchemaErr      error
)

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	snapshotSchemaOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, not Go maps with typed slices.
		defBytes, err := json.Marshal(SnapshotSchema)
		if err != nil {
			snapshotSchemaErr = fmt.Errorf("marshal snapshot schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			snapshotSchemaErr = fmt.Errorf("parse snapshot schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(snapshotSchemaURL, defParsed); err != nil {
			snapshotSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		snapshotSchemaCompiled, snapshotSchemaErr = c.Compile(snapshotSchemaURL)
	})
	return snapshotSchemaCompiled, snapshotSchemaErr
}

// ParseSnapshot decodes and validates a hand-off blob.
// Empty input and a JSON null are "no snapshot" and return nil without error.
// The returned snapshot has out-of-domain values cleared.
func ParseSnapshot(raw []byte) (*models.QuickQuizSnapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var parsed any
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotMalformed, err)
	}

	compiled, err := compiledSnapshotSchema()
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotSchema, err)
	}

	var snapshot models.QuickQuizSnapshot
	if err := json.Unmarshal(trimmed, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotSchema, err)
	}

	normalized := snapshot.Normalize()
	return &normalized, nil
}
