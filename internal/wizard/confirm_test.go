package wizard

import (
	"context"
	"errors"
	"testing"
)

func TestRunner_ConfirmedActionRunsOnce(t *testing.T) {
	r := NewRunner(NewGuard())

	runs := 0
	if !r.Request("book:2026-09-02:10:00", Prompt{Title: "Confirm"}, func(context.Context) error {
		runs++
		return nil
	}) {
		t.Fatal("request refused")
	}

	if _, ok := r.Pending(); !ok {
		t.Fatal("no pending prompt")
	}

	ran, err := r.Resolve(context.Background(), Confirmed)
	if !ran || err != nil {
		t.Fatalf("Resolve: ran=%v err=%v", ran, err)
	}
	if runs != 1 {
		t.Fatalf("action ran %d times", runs)
	}

	// The prompt is settled; a second resolve finds nothing.
	ran, err = r.Resolve(context.Background(), Confirmed)
	if ran || err != nil {
		t.Fatalf("second Resolve: ran=%v err=%v", ran, err)
	}
	if runs != 1 {
		t.Fatalf("action ran %d times after replay", runs)
	}
}

func TestRunner_DismissDropsAction(t *testing.T) {
	r := NewRunner(NewGuard())

	r.Request("cancel:5", Prompt{}, func(context.Context) error {
		t.Fatal("dismissed action ran")
		return nil
	})

	ran, err := r.Resolve(context.Background(), Dismissed)
	if ran || err != nil {
		t.Fatalf("Resolve: ran=%v err=%v", ran, err)
	}
	if _, ok := r.Pending(); ok {
		t.Fatal("prompt still pending after dismissal")
	}
}

func TestRunner_SameKeyRefusedDifferentKeyReplaces(t *testing.T) {
	r := NewRunner(NewGuard())

	r.Request("cancel:5", Prompt{Body: "first"}, func(context.Context) error { return nil })

	if r.Request("cancel:5", Prompt{Body: "again"}, func(context.Context) error { return nil }) {
		t.Fatal("same key accepted while pending")
	}

	if !r.Request("cancel:6", Prompt{Body: "other"}, func(context.Context) error { return nil }) {
		t.Fatal("different key refused")
	}
	prompt, _ := r.Pending()
	if prompt.Body != "other" {
		t.Fatalf("pending prompt = %q, want the replacement", prompt.Body)
	}
}

func TestRunner_InFlightKeyRefused(t *testing.T) {
	g := NewGuard()
	r := NewRunner(g)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	r.Request("logout", Prompt{}, func(context.Context) error {
		close(started)
		<-release
		return nil
	})

	go func() {
		defer close(done)
		r.Resolve(context.Background(), Confirmed)
	}()
	<-started

	// While the confirmed action runs, a new confirmation for the same key
	// must be refused.
	if r.Request("logout", Prompt{}, func(context.Context) error { return nil }) {
		t.Fatal("key accepted while its action is in flight")
	}

	close(release)
	<-done
}

func TestRunner_ActionErrorSurfacesAndClears(t *testing.T) {
	r := NewRunner(NewGuard())

	boom := errors.New("rejected")
	r.Request("book:x", Prompt{}, func(context.Context) error { return boom })

	ran, err := r.Resolve(context.Background(), Confirmed)
	if !ran {
		t.Fatal("action did not run")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if _, ok := r.Pending(); ok {
		t.Fatal("prompt pending after failed action")
	}

	// The key is usable again after the failure.
	if !r.Request("book:x", Prompt{}, func(context.Context) error { return nil }) {
		t.Fatal("key wedged after failure")
	}
}
