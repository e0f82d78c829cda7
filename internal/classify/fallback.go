package classify

import (
	"context"
	"log/slog"
)

// remoteBackend abstracts Remote for the fallback wrapper so tests can
// inject failures.
type remoteBackend interface {
	Classify(ctx context.Context, symptomText string) (Verdict, error)
}

// Fallback is the Classifier handed to the dialogue controller. It tries the
// remote backend first and degrades to the rule engine on any failure,
// immediately and without retries: the caller is waiting on a live line.
type Fallback struct {
	remote remoteBackend
	rules  *Rules
}

// NewFallback composes the remote classifier with the rule engine. Pass a
// nil remote for rules-only (offline) mode.
func NewFallback(remote *Remote, rules *Rules) *Fallback {
	var rb remoteBackend
	if remote != nil {
		rb = remote
	}
	return &Fallback{remote: rb, rules: rules}
}

func newFallbackWith(remote remoteBackend, rules *Rules) *Fallback {
	return &Fallback{remote: remote, rules: rules}
}

// Classify never fails. Remote errors (timeouts, rate limits, transport) are
// logged and answered by the rule engine instead.
func (f *Fallback) Classify(ctx context.Context, symptomText string) Verdict {
	if f.remote != nil {
		v, err := f.remote.Classify(ctx, symptomText)
		if err == nil {
			return v
		}
		slog.Warn("remote classification failed, using rule engine", "error", err)
	}
	return f.rules.Classify(ctx, symptomText)
}
