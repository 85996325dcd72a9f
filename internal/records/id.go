package records

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MalformedIDError reports that the last row of a table carries an ID whose
// trailing serial is not numeric, so the next serial cannot be derived.
type MalformedIDError struct {
	Raw string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed record id %q: trailing serial is not numeric", e.Raw)
}

// NextID derives the next record ID for a table from its current full row
// sequence (header included). IDs have the form <prefix>-<MMYY>-<NNN> with a
// 3-digit serial that restarts at 001 each month.
//
// The serial is taken from the last row's second column. Two submissions that
// read the table before either appends will derive the same serial; callers
// are expected to serialize submissions or accept the duplicate.
func NextID(rows [][]string, prefix string, now time.Time) (string, error) {
	stamp := now.Format("0106") // MMYY
	base := fmt.Sprintf("%s-%s", prefix, stamp)

	// Header-only or empty table starts the month at 001.
	if len(rows) < 2 {
		return base + "-001", nil
	}

	last := rows[len(rows)-1]
	lastID := ""
	if len(last) > 1 {
		lastID = last[1]
	}

	if !strings.HasPrefix(lastID, base+"-") {
		// Different month, different prefix, or a row that never had an ID:
		// restart the serial for the current month.
		return base + "-001", nil
	}

	serialPart := lastID[strings.LastIndex(lastID, "-")+1:]
	serial, err := strconv.Atoi(serialPart)
	if err != nil {
		return "", &MalformedIDError{Raw: lastID}
	}

	return fmt.Sprintf("%s-%03d", base, serial+1), nil
}
