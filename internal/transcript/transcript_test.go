package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestStartCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console")

	in := make(chan string, 16)
	w := Start(path, in)
	in <- "say hello"
	in <- ""
	in <- "stop"
	close(in)
	if err := w.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := readFile(t, path); got != "say hello\n\nstop\n" {
		t.Fatalf("transcript = %q", got)
	}

	in = make(chan string, 16)
	w = Start(path, in)
	in <- "list"
	close(in)
	if err := w.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := readFile(t, path); got != "say hello\n\nstop\nlist\n" {
		t.Fatalf("transcript after reopen = %q", got)
	}
}

func TestStartFlushesEachCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console")

	in := make(chan string)
	w := Start(path, in)
	defer func() {
		close(in)
		_ = w.Wait()
	}()

	in <- "first"
	// The unbuffered send above only proves the worker took the command;
	// poll until the flushed line shows up.
	deadline := time.Now().Add(5 * time.Second)
	for {
		data, _ := os.ReadFile(path)
		if string(data) == "first\n" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("transcript = %q, want flushed first line", data)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartOpenErrorKeepsDraining(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "console")

	in := make(chan string)
	w := Start(path, in)

	// Unbuffered sends must still be accepted after the failure.
	for i := 0; i < 3; i++ {
		select {
		case in <- "lost":
		case <-time.After(5 * time.Second):
			t.Fatalf("send %d blocked after open failure", i)
		}
	}
	close(in)

	err := w.Wait()
	if err == nil || !strings.Contains(err.Error(), "open transcript") {
		t.Fatalf("Wait = %v, want open transcript error", err)
	}
}
