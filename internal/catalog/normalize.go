package catalog

import (
	"strconv"
	"strings"

	"steamtab/internal/textutil"
)

// typeGame is the only data.type the export keeps; DLC, demos, soundtracks,
// and the rest of the catalog are filtered out.
const typeGame = "game"

// valueTBD fills fields whose source structure is absent altogether.
const valueTBD = "TBD"

// Normalize maps a raw record to its export row. The second return value is
// false for rejected records: unsuccessful lookups and non-game entries
// produce no row.
func Normalize(rec RawRecord) (Row, bool) {
	if !rec.Success || rec.Data == nil || rec.Data.Type != typeGame {
		return Row{}, false
	}

	data := rec.Data
	id := rec.QueryID.String()

	row := Row{
		Name:        textutil.CleanText(rec.QueryName),
		ID:          id,
		Image:       data.HeaderImage,
		IsFree:      strconv.FormatBool(data.IsFree),
		Developers:  strings.Join(data.Developers, ","),
		Genres:      joinGenres(data.Genres),
		Platforms:   strings.Join(data.Platforms.Enabled(), ","),
		ReleaseDate: valueTBD,
		Languages:   textutil.CleanText(data.SupportedLanguages),
		Type:        data.Type,
		Price:       valueTBD,
		LocalImage:  id + ".jpg",
	}

	if data.Metacritic != nil {
		row.Metacritic = data.Metacritic.Score.String()
	}
	if data.ReleaseDate != nil {
		row.ReleaseDate = data.ReleaseDate.Date
	}
	if data.PriceOverview != nil {
		row.Price = formatPrice(data.PriceOverview.Final)
	}

	return row, true
}

func joinGenres(genres []Genre) string {
	if len(genres) == 0 {
		return ""
	}
	descriptions := make([]string, len(genres))
	for i, genre := range genres {
		descriptions[i] = genre.Description
	}
	return strings.Join(descriptions, ",")
}

// formatPrice converts minor currency units to a major-unit decimal with the
// shortest representation: 999 -> "9.99", 1000 -> "10".
func formatPrice(minor int64) string {
	return strconv.FormatFloat(float64(minor)/100, 'f', -1, 64)
}
