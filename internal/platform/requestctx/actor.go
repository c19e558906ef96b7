// Package requestctx carries authenticated caller identity through contexts.
package requestctx

import (
	"context"
	"strings"
)

type actorIDContextKey struct{}

type localeContextKey struct{}

// WithActorID stores the caller identity in context.
func WithActorID(ctx context.Context, actorID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorIDContextKey{}, strings.TrimSpace(actorID))
}

// ActorIDFromContext returns the caller identity stored in context.
func ActorIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(actorIDContextKey{}).(string)
	return value
}

// WithLocale stores the caller's preferred locale in context.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey{}, strings.TrimSpace(locale))
}

// LocaleFromContext returns the caller's preferred locale, or "".
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(localeContextKey{}).(string)
	return value
}
