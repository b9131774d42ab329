package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
)

//go:embed listings.schema.json
var listingsSchemaJSON []byte

const listingsSchemaURL = "listings.schema.json"

var listingsSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(listingsSchemaURL, bytes.NewReader(listingsSchemaJSON)); err != nil {
		panic(fmt.Sprintf("failed to add listings schema: %v", err))
	}
	return compiler.MustCompile(listingsSchemaURL)
}

// FromFile reads a JSON array of listings from path.
func FromFile(path string) ([]models.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the listings schema and decodes it.
func Parse(data []byte) ([]models.Listing, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("seed is not valid JSON: %w", err)
	}
	if err := listingsSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("seed failed schema validation: %w", err)
	}

	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode seed listings: %w", err)
	}
	return listings, nil
}
