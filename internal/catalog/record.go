package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawRecord is one unit of the record store: a store appdetails response
// wrapped with the query that produced it.
type RawRecord struct {
	Success   bool        `json:"success"`
	QueryName string      `json:"query_appname"`
	QueryID   json.Number `json:"query_appid"`
	Data      *AppData    `json:"data"`
}

// AppData holds the catalog fields the export cares about. Numbers that are
// copied through verbatim are kept as json.Number so the exported text
// matches the source bytes.
type AppData struct {
	Type               string         `json:"type"`
	HeaderImage        string         `json:"header_image"`
	IsFree             bool           `json:"is_free"`
	Metacritic         *Metacritic    `json:"metacritic"`
	Developers         []string       `json:"developers"`
	Genres             []Genre        `json:"genres"`
	Platforms          PlatformFlags  `json:"platforms"`
	ReleaseDate        *ReleaseDate   `json:"release_date"`
	SupportedLanguages string         `json:"supported_languages"`
	PriceOverview      *PriceOverview `json:"price_overview"`
}

type Metacritic struct {
	Score json.Number `json:"score"`
}

type Genre struct {
	Description string `json:"description"`
}

type ReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// PriceOverview carries the price in minor currency units.
type PriceOverview struct {
	Currency string `json:"currency"`
	Final    int64  `json:"final"`
}

// PlatformFlag is one platform entry in source order.
type PlatformFlag struct {
	Name    string
	Enabled bool
}

// PlatformFlags preserves the key order of the source JSON object, which a
// plain map would lose. The export joins enabled platform names in exactly
// that order.
type PlatformFlags []PlatformFlag

func (p *PlatformFlags) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("platforms: expected object, got %v", tok)
	}

	var flags PlatformFlags
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("platforms: unexpected key token %v", keyTok)
		}
		var enabled bool
		if err := dec.Decode(&enabled); err != nil {
			return fmt.Errorf("platforms: value for %q: %w", key, err)
		}
		flags = append(flags, PlatformFlag{Name: key, Enabled: enabled})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = flags
	return nil
}

// Enabled returns the platform names whose flag is true, in source order.
func (p PlatformFlags) Enabled() []string {
	var names []string
	for _, flag := range p {
		if flag.Enabled {
			names = append(names, flag.Name)
		}
	}
	return names
}
