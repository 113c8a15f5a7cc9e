package webnews

import (
	"fmt"
	"net/http"

	"NewsDigest/internal/config"
	"NewsDigest/internal/source"
)

// Source kinds understood by the factory.
const (
	KindSearch = "search"
	KindFeed   = "feed"
)

// BuildRegistry constructs an adapter per configured source and registers
// it under the source's name. The same client and identity are shared by
// every adapter.
func BuildRegistry(sources []config.SourceConfig, client *http.Client, userAgent string) (*source.Registry, error) {
	registry := source.NewRegistry()

	for _, cfg := range sources {
		switch cfg.Kind {
		case KindSearch:
			registry.Register(NewSearchScanner(cfg, client, userAgent))
		case KindFeed:
			registry.Register(NewFeedScanner(cfg, client, userAgent))
		default:
			return nil, fmt.Errorf("source %s: unknown kind %q", cfg.Name, cfg.Kind)
		}
	}

	return registry, nil
}
