package history

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/five82/lantern/internal/entry"
)

func writeArchive(t *testing.T, path string, lines ...string) {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	for _, line := range lines {
		if _, err := zw.Write([]byte(line + "\n")); err != nil {
			t.Fatalf("gzip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func drain(t *testing.T, out <-chan entry.Entry) []string {
	t.Helper()
	var got []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-out:
			if !ok {
				return got
			}
			if e.IsHeader() {
				got = append(got, "# "+e.Text)
			} else {
				got = append(got, e.Text)
			}
		case <-timeout:
			t.Fatalf("loader did not finish")
		}
	}
}

func TestArchivesSelectsAndOrders(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"2023-01-02-1.log.gz",
		"readme.txt",
		"2023-01-01-1.log.gz",
		"2023-01-01-10.log.gz",
		"2023-01-01-9.log.gz",
		"latest.log",
		"2023-1-01-1.log.gz",
		"2023-01-01-1.log",
	} {
		writeFile(t, filepath.Join(dir, name), "")
	}
	if err := os.Mkdir(filepath.Join(dir, "2023-01-03-1.log.gz"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	got, err := Archives(dir)
	if err != nil {
		t.Fatalf("Archives: %v", err)
	}
	want := []string{
		filepath.Join(dir, "2023-01-01-1.log.gz"),
		filepath.Join(dir, "2023-01-01-9.log.gz"),
		filepath.Join(dir, "2023-01-01-10.log.gz"),
		filepath.Join(dir, "2023-01-02-1.log.gz"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Archives = %q, want %q", got, want)
	}
}

func TestArchivesMissingDir(t *testing.T) {
	got, err := Archives(filepath.Join(t.TempDir(), "nope"))
	if err != nil || got != nil {
		t.Fatalf("Archives(missing) = %q, %v", got, err)
	}
}

func TestLoaderReadsNewestFirst(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "logs")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	writeArchive(t, filepath.Join(dir, "2023-01-01-1.log.gz"), "jan1 a", "jan1 b")
	writeArchive(t, filepath.Join(dir, "2023-01-02-1.log.gz"), "jan2 a", "jan2\tb")
	writeFile(t, filepath.Join(dir, "readme.txt"), "not a log\n")
	writeFile(t, filepath.Join(dir, "latest.log"), "live a\nlive b\n")

	out := make(chan entry.Entry, 16)
	w := Start(Options{LogDir: dir, LiveLog: filepath.Join(dir, "latest.log"), BaseDir: base}, make(chan struct{}), out)

	got := drain(t, out)
	want := []string{
		"live b", "live a", "# " + filepath.Join("logs", "latest.log"),
		"jan2    b", "jan2 a", "# " + filepath.Join("logs", "2023-01-02-1.log.gz"),
		"jan1 b", "jan1 a", "# " + filepath.Join("logs", "2023-01-01-1.log.gz"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loader = %q\nwant %q", got, want)
	}
	if err := w.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestLoaderMissingLiveFile(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, filepath.Join(dir, "2024-05-01-1.log.gz"), "old")

	out := make(chan entry.Entry, 16)
	w := Start(Options{LogDir: dir, LiveLog: filepath.Join(dir, "latest.log")}, make(chan struct{}), out)

	got := drain(t, out)
	want := []string{
		"# " + filepath.Join(dir, "latest.log"),
		"old",
		"# " + filepath.Join(dir, "2024-05-01-1.log.gz"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loader = %q, want %q", got, want)
	}
	if err := w.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestLoaderNothingAtAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	out := make(chan entry.Entry, 16)
	w := Start(Options{LogDir: dir, LiveLog: filepath.Join(dir, "latest.log")}, make(chan struct{}), out)
	want := []string{"# " + filepath.Join(dir, "latest.log")}
	if got := drain(t, out); !reflect.DeepEqual(got, want) {
		t.Fatalf("loader = %q, want only the live header", got)
	}
	if err := w.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestLoaderCancel(t *testing.T) {
	dir := t.TempDir()
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, strings.Repeat("x", i))
	}
	writeFile(t, filepath.Join(dir, "latest.log"), strings.Join(lines, "\n")+"\n")

	out := make(chan entry.Entry)
	cancel := make(chan struct{})
	w := Start(Options{LogDir: dir, LiveLog: filepath.Join(dir, "latest.log")}, cancel, out)

	// Take a few, then cancel while the loader is blocked on delivery.
	for i := 0; i < 3; i++ {
		select {
		case <-out:
		case <-time.After(5 * time.Second):
			t.Fatalf("no entry %d", i)
		}
	}
	close(cancel)

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("loader did not stop after cancel")
	}
	if err := w.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if _, ok := <-out; ok {
		t.Fatalf("out should be closed after cancel")
	}
}

func TestLoaderCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2023-01-01-1.log.gz"), "definitely not gzip")

	out := make(chan entry.Entry, 16)
	w := Start(Options{LogDir: dir, LiveLog: filepath.Join(dir, "latest.log")}, make(chan struct{}), out)
	drain(t, out)

	err := w.Wait()
	if err == nil {
		t.Fatalf("corrupt archive should fail the loader")
	}
	if !strings.Contains(err.Error(), "2023-01-01-1.log.gz") {
		t.Fatalf("error %q does not name the archive", err)
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Fatalf("unexpected not-exist error: %v", err)
	}
}
