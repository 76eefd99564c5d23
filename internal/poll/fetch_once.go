package poll

import (
	"context"
	"log/slog"
	"time"

	"usajobs-list/internal/config"
	"usajobs-list/internal/store"
)

// Fetcher retrieves one raw search response.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, creds config.Credentials) (any, error)
}

// FetchOnce runs the search once and saves the raw response at path.
func FetchOnce(ctx context.Context, log *slog.Logger, f Fetcher, creds config.Credentials, path string) error {
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()

	unlock, err := store.Lock(path)
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	log.Info("fetch.start", "source", f.Name(), "path", path)
	doc, err := f.Fetch(ctx, creds)
	if err != nil {
		return err
	}
	if err := store.WriteJSON(path, doc); err != nil {
		return err
	}
	log.Info("fetch.ok", "source", f.Name(), "path", path,
		"elapsed_ms", time.Since(start).Milliseconds())
	return nil
}
