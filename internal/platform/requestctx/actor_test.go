package requestctx

import (
	"context"
	"testing"
)

func TestActorIDRoundTrip(t *testing.T) {
	ctx := WithActorID(context.Background(), "  shooter-1 ")
	if got := ActorIDFromContext(ctx); got != "shooter-1" {
		t.Fatalf("actor id = %q, want shooter-1", got)
	}
}

func TestActorIDMissing(t *testing.T) {
	if got := ActorIDFromContext(context.Background()); got != "" {
		t.Fatalf("actor id = %q, want empty", got)
	}
}

func TestLocaleRoundTrip(t *testing.T) {
	ctx := WithLocale(context.Background(), "pt-BR")
	if got := LocaleFromContext(ctx); got != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", got)
	}
}
