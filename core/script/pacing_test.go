package script

import (
	"context"
	"testing"
	"time"
)

func TestPacerInactiveByDefault(t *testing.T) {
	p := NewPacer()
	if p.Active() {
		t.Fatal("new pacer should be inactive")
	}
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait on inactive pacer: %v", err)
	}
}

func TestPacerSetMillisecondsPerCharActivatesAndDisables(t *testing.T) {
	p := NewPacer()
	p.SetMillisecondsPerChar(10)
	if !p.Active() {
		t.Fatal("pacer should be active after SetMillisecondsPerChar(10)")
	}
	p.SetMillisecondsPerChar(0)
	if p.Active() {
		t.Fatal("pacer should be inactive after SetMillisecondsPerChar(0)")
	}
	p.SetMillisecondsPerChar(-5)
	if p.Active() {
		t.Fatal("pacer should be inactive after SetMillisecondsPerChar(-5)")
	}
}

func TestPacerWaitRespectsCancelledContext(t *testing.T) {
	p := NewPacer()
	p.SetMillisecondsPerChar(1000)
	// Drain the initial burst token so the next Wait call actually blocks.
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("initial Wait: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); err == nil {
		t.Fatal("expected Wait to fail on a cancelled context")
	}
}

func TestPacerWaitRespectsDeadline(t *testing.T) {
	p := NewPacer()
	p.SetMillisecondsPerChar(5)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait %d: %v", i, err)
		}
	}
	if time.Since(start) < 0 {
		t.Fatal("unreachable")
	}
}
