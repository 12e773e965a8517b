package relay

import (
	"errors"
	"testing"
	"time"
)

func TestSendDelivers(t *testing.T) {
	cancel := make(chan struct{})
	out := make(chan int, 1)
	if !Send(cancel, out, 7) {
		t.Fatalf("Send returned false with an open cancel channel")
	}
	if got := <-out; got != 7 {
		t.Fatalf("received %d, want 7", got)
	}
}

func TestSendClosedCancelWinsOverRoom(t *testing.T) {
	cancel := make(chan struct{})
	close(cancel)
	out := make(chan int, 1)
	for i := 0; i < 100; i++ {
		if Send(cancel, out, i) {
			t.Fatalf("Send delivered after cancellation")
		}
	}
	if len(out) != 0 {
		t.Fatalf("out has %d values, want 0", len(out))
	}
}

func TestSendUnblocksOnCancel(t *testing.T) {
	cancel := make(chan struct{})
	out := make(chan int)
	result := make(chan bool, 1)
	go func() { result <- Send(cancel, out, 1) }()

	close(cancel)
	select {
	case delivered := <-result:
		if delivered {
			t.Fatalf("Send reported delivery with no receiver")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Send did not observe cancellation")
	}
}

func TestSendIgnoresCancelValues(t *testing.T) {
	cancel := make(chan struct{})
	out := make(chan int)
	result := make(chan bool, 1)
	go func() { result <- Send(cancel, out, 3) }()

	cancel <- struct{}{}
	if got := <-out; got != 3 {
		t.Fatalf("received %d, want 3", got)
	}
	if !<-result {
		t.Fatalf("Send returned false after delivering")
	}
}

func TestWorkerWait(t *testing.T) {
	boom := errors.New("boom")
	w := Go("test", func() error { return boom })
	if w.Name() != "test" {
		t.Fatalf("Name = %q", w.Name())
	}
	if err := w.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait = %v, want %v", err, boom)
	}
	// Joining twice returns the same result.
	if err := w.Wait(); !errors.Is(err, boom) {
		t.Fatalf("second Wait = %v, want %v", err, boom)
	}
	select {
	case <-w.Done():
	default:
		t.Fatalf("Done not closed after Wait")
	}
}
