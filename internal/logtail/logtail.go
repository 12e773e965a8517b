package logtail

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineSize       = 4 * 1024 * 1024
)

// NewScanner returns a line scanner. A line longer than 4 MiB is returned
// as several lines of at most 4 MiB each, split on a rune boundary.
func NewScanner(r io.Reader) *bufio.Scanner {
	return newScanner(r, maxLineSize)
}

func newScanner(r io.Reader, limit int) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialLineBuffer, limit)), limit+2)
	scanner.Split(splitLines(limit))
	return scanner
}

// splitLines is bufio.ScanLines with lines longer than limit bytes cut
// into pieces. It looks two bytes past limit so a "\r\n" right after a
// full-length piece ends that line.
func splitLines(limit int) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		end := bytes.IndexByte(data, '\n')
		if end < 0 && atEOF {
			end = len(data)
		}
		if end >= 0 {
			line := end
			if line > 0 && data[line-1] == '\r' {
				line--
			}
			if line <= limit {
				return bufio.ScanLines(data, atEOF)
			}
		} else if len(data) < limit+2 {
			return 0, nil, nil
		}

		n := limit
		for i := limit - 1; i > 0 && i >= limit-utf8.UTFMax; i-- {
			if utf8.RuneStart(data[i]) {
				if !utf8.FullRune(data[i:limit]) {
					n = i
				}
				break
			}
		}
		return n, data[:n], nil
	}
}

// ReadLines returns every line of r in order, without line terminators.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read log")
	}
	return lines, nil
}

// ReadFile returns the lines of the file at path. A missing file reads as
// empty with ok false.
func ReadFile(path string) (lines []string, ok bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "open log")
	}
	defer file.Close()

	lines, err = ReadLines(file)
	if err != nil {
		return nil, false, err
	}
	return lines, true, nil
}
