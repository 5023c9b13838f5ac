package runstore

import "time"

// Run summarizes one pipeline invocation.
type Run struct {
	ID               string
	StartedAt        time.Time
	FinishedAt       time.Time
	RecordsTotal     int
	RecordsMalformed int
	RowsExported     int
	AssetsSkipped    int
	AssetsSucceeded  int
	AssetsFailed     int
	ExportPath       string
}

// AssetFailure records one image that could not be fetched during a run.
type AssetFailure struct {
	RunID  string
	AppID  string
	URL    string
	Detail string
}
