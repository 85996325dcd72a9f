package records

// Field describes one user-entered column of a record type. Fields with a
// non-empty Options list are enumerated choices; the rest are free text.
type Field struct {
	Name      string
	Label     string
	Required  bool
	Options   []string
	Multiline bool
}

// Definition describes one record type: which table it lives in, the prefix
// its IDs carry, and the ordered field list between the id and attachment
// columns. Row layout is always: timestamp, id, fields..., attachment_url.
type Definition struct {
	Name   string // table name in the spreadsheet store
	Slug   string // URL path segment for the type's submit endpoint
	Prefix string
	Fields []Field
}

// Timestamp layout used in the first column of every row.
const TimestampLayout = "2006-01-02 15:04:05"

var Complaints = Definition{
	Name:   "Complaints",
	Slug:   "complaints",
	Prefix: "C",
	Fields: []Field{
		{Name: "product", Label: "Product Name", Required: true},
		{Name: "severity", Label: "Severity Level", Options: []string{"High", "Medium", "Low"}},
		{Name: "contact_number", Label: "Contact Number", Required: true},
		{Name: "details", Label: "Complaint Details", Required: true, Multiline: true},
		{Name: "submitted_by", Label: "Submitted By (Optional)"},
	},
}

var Deviation = Definition{
	Name:   "Deviation",
	Slug:   "deviation",
	Prefix: "D",
	Fields: []Field{
		{Name: "department", Label: "Responsible Department", Required: true},
		{Name: "type", Label: "Deviation Type", Options: []string{"Minor", "Major", "Critical"}},
		{Name: "description", Label: "Deviation Details", Required: true, Multiline: true},
		{Name: "reported_by", Label: "Reported By", Required: true},
	},
}

var ChangeControl = Definition{
	Name:   "Change Control",
	Slug:   "change-control",
	Prefix: "CC",
	Fields: []Field{
		{Name: "change_type", Label: "Change Type", Required: true, Options: []string{"Equipment", "Process", "Document", "Other"}},
		{Name: "justification", Label: "Justification for Change", Required: true, Multiline: true},
		{Name: "impact_analysis", Label: "Impact Analysis", Required: true, Multiline: true},
		{Name: "requested_by", Label: "Requested By", Required: true},
	},
}

// All lists every record type in display order.
var All = []Definition{Complaints, Deviation, ChangeControl}

// BySlug returns the definition matching a URL slug.
func BySlug(slug string) (Definition, bool) {
	for _, def := range All {
		if def.Slug == slug {
			return def, true
		}
	}
	return Definition{}, false
}
