package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed collection.schema.json
var collectionSchemaJSON string

const collectionSchemaURL = "https://simpletodo.invalid/collection.schema.json"

var compileCollectionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(collectionSchemaURL, strings.NewReader(collectionSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add collection schema: %w", err)
	}
	return compiler.Compile(collectionSchemaURL)
})

// validateCollection checks a serialized collection against the embedded
// schema. The returned error names the first offending location.
func validateCollection(data []byte) error {
	schema, err := compileCollectionSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := firstLeaf(ve)
			loc := leaf.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			return fmt.Errorf("schema: %s: %s", loc, leaf.Message)
		}
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
