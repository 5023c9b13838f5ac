package catalog

// Row is the canonical, schema-fixed representation of one accepted record.
// All fields are already coerced to the text that lands in the export.
type Row struct {
	Name        string
	ID          string
	Image       string
	IsFree      string
	Metacritic  string
	Developers  string
	Genres      string
	Platforms   string
	ReleaseDate string
	Languages   string
	Type        string
	Price       string
	LocalImage  string
}

// Field pairs an export column name with its accessor. The schema is this
// ordered list, fixed at build time; no record shape ever re-derives it.
type Field struct {
	Name  string
	Value func(Row) string
}

// Schema is the ordered column list shared by the table header and every row.
var Schema = []Field{
	{"name", func(r Row) string { return r.Name }},
	{"id", func(r Row) string { return r.ID }},
	{"image", func(r Row) string { return r.Image }},
	{"isFree", func(r Row) string { return r.IsFree }},
	{"metacritic", func(r Row) string { return r.Metacritic }},
	{"developers", func(r Row) string { return r.Developers }},
	{"genres", func(r Row) string { return r.Genres }},
	{"platforms", func(r Row) string { return r.Platforms }},
	{"releasedate", func(r Row) string { return r.ReleaseDate }},
	{"languages", func(r Row) string { return r.Languages }},
	{"type", func(r Row) string { return r.Type }},
	{"price", func(r Row) string { return r.Price }},
	{"localimage", func(r Row) string { return r.LocalImage }},
}

// FieldNames returns the column names in schema order.
func FieldNames() []string {
	names := make([]string, len(Schema))
	for i, field := range Schema {
		names[i] = field.Name
	}
	return names
}

// Values returns the row's field values in schema order.
func (r Row) Values() []string {
	values := make([]string, len(Schema))
	for i, field := range Schema {
		values[i] = field.Value(r)
	}
	return values
}
