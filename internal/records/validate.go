package records

import (
	"fmt"
	"strings"
)

// ValidationError lists the required fields a submission left blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks that every required field of the definition has a
// non-blank value. Optional fields may be absent or empty.
func Validate(def Definition, fields map[string]string) error {
	var missing []string
	for _, f := range def.Fields {
		if f.Required && strings.TrimSpace(fields[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Row assembles the full append row for a submission in table column order:
// timestamp, id, fields in definition order, attachment URL.
func Row(def Definition, timestamp, id string, fields map[string]string, attachmentURL string) []interface{} {
	row := make([]interface{}, 0, len(def.Fields)+3)
	row = append(row, timestamp, id)
	for _, f := range def.Fields {
		row = append(row, fields[f.Name])
	}
	row = append(row, attachmentURL)
	return row
}
