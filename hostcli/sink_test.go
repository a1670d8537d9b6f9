package hostcli

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestStdoutSinkTypesTabsAndReturns(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	sink := &StdoutSink{out: w}
	ctx := context.Background()

	if err := sink.Type(ctx, "alice"); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if err := sink.Tab(ctx); err != nil {
		t.Fatalf("Tab: %v", err)
	}
	if err := sink.Type(ctx, "s3cr3t"); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if err := sink.Return(ctx); err != nil {
		t.Fatalf("Return: %v", err)
	}
	w.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if got, want := buf.String(), "alice\ts3cr3t\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestStdoutSinkSleepRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := NewStdoutSink()
	if err := sink.Sleep(ctx, 5); err == nil {
		t.Fatal("expected Sleep to return an error for a cancelled context")
	}
}
