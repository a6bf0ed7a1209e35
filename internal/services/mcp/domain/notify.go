package domain

import (
	"context"
	"strings"
)

// ResourceUpdateNotifier tells subscribed clients that a resource changed.
type ResourceUpdateNotifier func(ctx context.Context, uri string)

// NotifyResourceUpdates sends one notification per non-empty uri.
func NotifyResourceUpdates(ctx context.Context, notify ResourceUpdateNotifier, uris ...string) {
	if notify == nil {
		return
	}
	for _, uri := range uris {
		if strings.TrimSpace(uri) == "" {
			continue
		}
		notify(ctx, uri)
	}
}
