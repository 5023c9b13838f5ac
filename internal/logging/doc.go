// Package logging configures slog for the pipeline. It offers a console
// handler for interactive use, a JSON handler for machine consumption, and
// small attr helpers so call sites do not import log/slog directly.
package logging
