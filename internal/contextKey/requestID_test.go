package contextKey

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	id, ok := RequestIDFromContext(ctx)
	if !ok || id != "req-1" {
		t.Fatalf("expected req-1, got %q ok=%v", id, ok)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Fatalf("expected no request id")
	}
	if _, ok := RequestIDFromContext(WithRequestID(context.Background(), "")); ok {
		t.Fatalf("expected empty request id to be ignored")
	}
}
