package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const reportStateSchemaURL = "report_state.schema.json"

// reportStateSchema describes the persisted report state layout.
const reportStateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["historical_data", "reports_generated"],
  "properties": {
    "reports_generated": {"type": "integer", "minimum": 0},
    "historical_data": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["turn"],
        "properties": {
          "turn": {"type": "integer"},
          "timestamp": {"type": "string"},
          "population": {"type": "integer"},
          "money": {"type": "number"},
          "satisfaction": {"type": "number"},
          "unemployment_rate": {"type": "number"},
          "buildings_count": {"type": "integer", "minimum": 0},
          "income": {"type": "number"},
          "expenses": {"type": "number"},
          "net_income": {"type": "number"},
          "total_debt": {"type": "number"},
          "active_loans": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var stateSchema = jsonschema.MustCompileString(reportStateSchemaURL, reportStateSchema)

// ValidateState checks raw JSON against the persisted report state layout.
// Failures wrap ErrCorruptState.
func ValidateState(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if err := stateSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptState, strings.TrimSpace(err.Error()))
	}
	return nil
}
