// Package validation checks generated report JSON against the embedded
// schemas before it is written.
package validation

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed call_report_schema.json
var callReportSchema []byte

//go:embed queue_report_schema.json
var queueReportSchema []byte

// ValidateCallReport validates a serialized call report document.
func ValidateCallReport(doc []byte) error {
	return validate(callReportSchema, doc)
}

// ValidateQueueReport validates a serialized queue report document.
func ValidateQueueReport(doc []byte) error {
	return validate(queueReportSchema, doc)
}

func validate(schemaData, doc []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaData)
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to validate: %w", err)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}
