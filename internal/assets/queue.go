package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"steamtab/internal/config"
	"steamtab/internal/fileutil"
	"steamtab/internal/logging"
)

// HTTPDoer describes the HTTP client used by the queue.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Ref identifies one image to fetch and where to store it.
type Ref struct {
	ID       string
	URL      string
	FileName string
}

// Status classifies the outcome of one queue item.
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one Ref. Detail is set for failures and
// distinguishes not-found responses from other transport errors.
type Outcome struct {
	Ref    Ref
	Status Status
	Detail string
}

// Summary aggregates outcomes for one queue run.
// Skipped + Succeeded + Failed == Total on a completed run.
type Summary struct {
	Total     int
	Skipped   int
	Succeeded int
	Failed    int
}

// Queue fetches one image per reference into a destination directory. A
// single item's failure never aborts the batch: the partial file is removed,
// the failure is logged and classified, and the queue moves on.
type Queue struct {
	dir         string
	concurrency int
	overwrite   bool
	userAgent   string
	client      HTTPDoer
	logger      *slog.Logger
}

// New constructs a queue from application config.
func New(cfg *config.Config, logger *slog.Logger) *Queue {
	client := &http.Client{Timeout: time.Duration(cfg.Download.RequestTimeout) * time.Second}
	return NewWithClient(cfg, client, logger)
}

// NewWithClient allows injecting the HTTP client (used in tests).
func NewWithClient(cfg *config.Config, client HTTPDoer, logger *slog.Logger) *Queue {
	return &Queue{
		dir:         cfg.Paths.ImageDir,
		concurrency: cfg.Download.Concurrency,
		overwrite:   cfg.Download.OverwriteExisting,
		userAgent:   cfg.Download.UserAgent,
		client:      client,
		logger:      logging.NewComponentLogger(logger, "images"),
	}
}

// Run drains refs through the queue. With concurrency 1 items are fetched
// strictly one at a time in input order; higher concurrency keeps per-item
// isolation and the outcome accounting but not completion order. The
// returned error reflects only fatal conditions (destination directory
// creation, context cancellation), never individual download failures.
func (q *Queue) Run(ctx context.Context, refs []Ref) (Summary, []Outcome, error) {
	if err := fileutil.EnsureDir(q.dir); err != nil {
		return Summary{}, nil, err
	}

	outcomes := make([]Outcome, len(refs))
	total := len(refs)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for worker := 0; worker < q.concurrency; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = q.fetch(ctx, refs[i], i, total)
			}
		}()
	}

feed:
	for i := range refs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return summarize(outcomes), outcomes, err
	}

	summary := summarize(outcomes)
	q.logger.Info("image queue drained",
		logging.Int("total", summary.Total),
		logging.Int("skipped", summary.Skipped),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
	)
	return summary, outcomes, nil
}

func (q *Queue) fetch(ctx context.Context, ref Ref, index, total int) Outcome {
	dest := filepath.Join(q.dir, ref.FileName)

	if !q.overwrite && fileutil.Exists(dest) {
		q.logger.Debug("image already present",
			logging.String("appid", ref.ID),
			logging.String("file", ref.FileName),
		)
		return Outcome{Ref: ref, Status: StatusSkipped}
	}

	if err := q.download(ctx, ref.URL, dest); err != nil {
		q.logger.Warn("image download failed",
			logging.Int("item", index+1),
			logging.Int("total", total),
			logging.String("appid", ref.ID),
			logging.Error(err),
		)
		return Outcome{Ref: ref, Status: StatusFailed, Detail: err.Error()}
	}

	q.logger.Info("image downloaded",
		logging.Int("item", index+1),
		logging.Int("total", total),
		logging.String("appid", ref.ID),
	)
	return Outcome{Ref: ref, Status: StatusSucceeded}
}

// download streams url into dest. Any failure removes the partially written
// file so a rerun sees a clean slate.
func (q *Queue) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", q.userAgent)

	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("image not found (404)")
	case resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	_, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(dest)
		if copyErr != nil {
			return fmt.Errorf("write image: %w", copyErr)
		}
		return fmt.Errorf("close image file: %w", closeErr)
	}
	return nil
}

func summarize(outcomes []Outcome) Summary {
	summary := Summary{Total: len(outcomes)}
	for _, outcome := range outcomes {
		switch outcome.Status {
		case StatusSkipped:
			summary.Skipped++
		case StatusSucceeded:
			summary.Succeeded++
		case StatusFailed:
			summary.Failed++
		}
	}
	return summary
}
