package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"steamtab/internal/catalog"
	"steamtab/internal/config"
	"steamtab/internal/logging"
)

// maxRecordBytes bounds a single record unit. Catalog entries with long
// descriptions run to a few hundred kilobytes; 32 MiB leaves generous room.
const maxRecordBytes = 32 << 20

// Policy selects the reaction to a record unit that fails to parse.
type Policy string

const (
	// PolicyAbort stops the run on the first malformed unit.
	PolicyAbort Policy = config.MalformedAbort
	// PolicySkip logs the malformed unit and continues with the rest.
	PolicySkip Policy = config.MalformedSkip
)

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(value) {
	case PolicyAbort, PolicySkip:
		return Policy(value), nil
	default:
		return "", fmt.Errorf("unknown malformed-record policy %q", value)
	}
}

// ParseError identifies a record unit that could not be decoded.
type ParseError struct {
	Path   string
	Line   int
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse record store %s: line %d (offset %d): %v", e.Path, e.Line, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Dataset is the caller-owned result of one ingestion pass. There is no
// package-level cache; callers hand the dataset to the downstream stages.
type Dataset struct {
	Path      string
	Records   []catalog.RawRecord
	Malformed int
}

// Options configures ingestion.
type Options struct {
	Policy Policy
	Logger *slog.Logger
}

// Load reads the linefeed-delimited record store at path and parses each
// unit into a RawRecord. Under PolicyAbort the first malformed unit returns
// a *ParseError; under PolicySkip it is logged and counted instead.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicyAbort
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64<<10), maxRecordBytes)

	ds := &Dataset{Path: path}
	line := 0
	var offset int64
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++
		unit := scanner.Bytes()
		unitOffset := offset
		offset += int64(len(unit)) + 1

		if len(bytes.TrimSpace(unit)) == 0 {
			continue
		}

		var rec catalog.RawRecord
		if err := json.Unmarshal(unit, &rec); err != nil {
			perr := &ParseError{Path: path, Line: line, Offset: unitOffset, Err: err}
			if policy == PolicySkip {
				ds.Malformed++
				logger.Warn("skipping malformed record",
					logging.Int("line", line),
					logging.Int64("offset", unitOffset),
					logging.Error(err),
				)
				continue
			}
			return nil, perr
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan record store %s: %w", path, err)
	}

	logger.Info("record store loaded",
		logging.String("path", path),
		logging.Int("records", len(ds.Records)),
		logging.Int("malformed", ds.Malformed),
	)
	return ds, nil
}
