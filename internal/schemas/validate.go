// Package schemas validates gateway listing payloads against a JSON
// Schema before they enter the session store, so malformed backend
// responses are rejected at the store boundary rather than surfacing
// as odd behavior in later stages.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/martin/listing-hunter/internal/types"
)

//go:embed listing.schema.json
var listingSchemaJSON string

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates schema validation errors for one payload.
type ValidationError struct {
	Index  int // position of the offending listing in the payload
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("listing %d failed schema validation", e.Index)
	}
	first := e.Errors[0]
	if len(e.Errors) == 1 {
		return fmt.Sprintf("listing %d failed schema validation: %s: %s", e.Index, first.Field, first.Message)
	}
	return fmt.Sprintf("listing %d failed schema validation: %s: %s (and %d more)",
		e.Index, first.Field, first.Message, len(e.Errors)-1)
}

var listingSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(listingSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded listing schema: %v", err))
	}
	listingSchema = schema
}

// ValidateListing checks a single listing against the schema.
func ValidateListing(l types.Listing) error {
	return validateAt(l, 0)
}

// ValidateListings checks every listing in a gateway payload, returning
// the first validation failure with its position.
func ValidateListings(listings []types.Listing) error {
	for i, l := range listings {
		if err := validateAt(l, i); err != nil {
			return err
		}
	}
	return nil
}

func validateAt(l types.Listing, index int) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to encode listing for validation: %w", err)
	}

	result, err := listingSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	vErr := &ValidationError{Index: index}
	for _, desc := range result.Errors() {
		vErr.Errors = append(vErr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return vErr
}
