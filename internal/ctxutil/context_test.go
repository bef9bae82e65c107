package ctxutil

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if id, ok := GetRequestID(ctx); ok || id != "" {
		t.Errorf("expected no request ID on empty context, got %q", id)
	}

	ctx = WithRequestID(ctx, "req-123")
	id, ok := GetRequestID(ctx)
	if !ok || id != "req-123" {
		t.Errorf("expected request ID 'req-123', got %q (ok=%v)", id, ok)
	}
}

func TestUserIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if id := GetUserID(ctx); id != "" {
		t.Errorf("expected no user ID on empty context, got %q", id)
	}

	ctx = WithUserID(ctx, "U1234567890")
	if id := GetUserID(ctx); id != "U1234567890" {
		t.Errorf("expected user ID 'U1234567890', got %q", id)
	}
}

func TestEmptyValuesIgnored(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "")
	if _, ok := GetRequestID(ctx); ok {
		t.Error("empty request ID should not be retrievable")
	}

	ctx = WithUserID(context.Background(), "")
	if id := GetUserID(ctx); id != "" {
		t.Error("empty user ID should not be retrievable")
	}
}
