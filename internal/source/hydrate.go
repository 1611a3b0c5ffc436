package source

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/catalog-entry.schema.json
var entrySchemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// entrySchema compiles the embedded catalog entry schema once.
func entrySchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(entrySchemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("catalog-entry.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("catalog-entry.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// mapEntry validates one raw catalog record against the entry schema and
// decodes it. ok is false for records this engine cannot interpret; those
// are dropped by hydration, not errors, so future catalog schema additions
// do not break existing clients.
func mapEntry(raw RawEntry, log *zap.SugaredLogger) (entryFields, bool) {
	schema, err := entrySchema()
	if err != nil {
		// Embedded schema failing to compile is a build defect; nothing
		// hydrates until it is fixed.
		log.Errorw("catalog entry schema unavailable", "error", err)
		return entryFields{}, false
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		log.Debugw("dropping malformed catalog entry", "error", err)
		return entryFields{}, false
	}

	if err := schema.Validate(inst); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			log.Debugw("dropping catalog entry", "reason", rejectionReason(ve))
		} else {
			log.Debugw("dropping catalog entry", "error", err)
		}
		return entryFields{}, false
	}

	var f entryFields
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Debugw("dropping undecodable catalog entry", "error", err)
		return entryFields{}, false
	}
	return f, true
}

// rejectionReason renders the first leaf cause of a validation error.
func rejectionReason(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.ErrorKind != nil {
		return ve.ErrorKind.LocalizedString(printer)
	}
	return ve.Error()
}

// hydrate rebuilds the name-keyed package index from raw catalog records.
// Records the schema gate rejects are skipped. When prev holds a package of
// the same name, its runtime state is carried into the new index; otherwise
// a fresh Package is built. The result holds exactly one entry per name.
func hydrate(sourceID string, prev map[string]*Package, raw []RawEntry) map[string]*Package {
	log := zap.S().With("source", sourceID)

	index := make(map[string]*Package, len(raw))
	for _, r := range raw {
		fields, ok := mapEntry(r, log)
		if !ok {
			continue
		}

		pkg := &Package{}
		if old, exists := prev[fields.Name]; exists {
			// Carry runtime state across reloads.
			*pkg = *old
		}
		pkg.applyRemote(fields, sourceID)
		index[fields.Name] = pkg
	}
	return index
}
