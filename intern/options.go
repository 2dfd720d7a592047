package intern

import "log/slog"

// Options configures an Interner.
type Options struct {
	// Logger receives debug-level reclamation events. If nil is assigned,
	// logging is disabled. Defaults to a discard logger.
	Logger *slog.Logger
}

// WithLogger sets the structured logger used by the Interner.
func WithLogger(logger *slog.Logger) func(o *Options) {
	return func(o *Options) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		o.Logger = logger
	}
}
