package logger

import (
	"testing"

	"github.com/theory-cloud/reactstarter/pkg/observability"
)

func TestLogger_DefaultIsNoOp(t *testing.T) {
	got := Logger()
	if got == nil {
		t.Fatal("expected Logger() to return a non-nil logger")
	}
	if !got.IsHealthy() {
		t.Fatal("expected default logger to be healthy")
	}
}

func TestLogger_SetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	stub := observability.NewTestLogger()
	SetLogger(stub)
	if Logger() != stub {
		t.Fatal("expected Logger() to return the logger set via SetLogger")
	}

	Logger().Info("hello")
	if got := stub.Messages(); len(got) != 1 || got[0] != "hello" {
		t.Fatalf("expected entry on the installed logger, got %v", got)
	}

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("expected Logger() to reset to a non-nil logger")
	}
	if Logger() == stub {
		t.Fatal("expected Logger() to reset away from the previous logger")
	}
}
