package export

import (
	"fmt"
	"strings"

	"steamtab/internal/catalog"
	"steamtab/internal/fileutil"
)

const (
	columnSeparator = "\t"
	lineSeparator   = "\n"
)

// Serialize renders rows as a tab-separated table: one header line from the
// schema, one line per row, linefeed-terminated. Every row line carries
// exactly as many fields as the header because both are driven by the same
// schema descriptors.
func Serialize(rows []catalog.Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(catalog.FieldNames(), columnSeparator))
	for _, row := range rows {
		b.WriteString(lineSeparator)
		b.WriteString(strings.Join(row.Values(), columnSeparator))
	}
	b.WriteString(lineSeparator)
	return b.String()
}

// Write serializes rows and persists the table to path atomically.
func Write(path string, rows []catalog.Row) error {
	if err := fileutil.WriteFileAtomic(path, []byte(Serialize(rows))); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
