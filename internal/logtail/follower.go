package logtail

import (
	"io"
	"os"
	"os/exec"
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Follower is the external process that prints lines appended to the live
// log. Its standard output feeds StartFeed; its standard error is
// discarded.
type Follower struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	killed atomic.Bool
}

// Spawn starts argv with the live log path appended as the last argument.
func Spawn(argv []string, livePath string) (*Follower, error) {
	if len(argv) == 0 {
		return nil, errors.New("follow command is empty")
	}
	args := append(append([]string(nil), argv[1:]...), livePath)
	cmd := exec.Command(argv[0], args...)
	cmd.Stdin = nil
	cmd.Stderr = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "follower stdout")
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start follower %q", argv[0])
	}
	log.WithFields(log.Fields{"pid": cmd.Process.Pid, "command": cmd.String()}).Debug("follower started")
	return &Follower{cmd: cmd, stdout: stdout}, nil
}

// Stdout is the follower's output stream.
func (f *Follower) Stdout() io.Reader {
	return f.stdout
}

// Kill terminates the follower, which ends its output stream. Killing a
// process that already exited is not an error.
func (f *Follower) Kill() error {
	f.killed.Store(true)
	if err := f.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return errors.Wrap(err, "kill follower")
	}
	return nil
}

// Wait reaps the follower. Call it only after the feed reading Stdout has
// returned. An exit caused by Kill is not an error.
func (f *Follower) Wait() error {
	err := f.cmd.Wait()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if f.killed.Load() && errors.As(err, &exitErr) {
		log.WithField("state", exitErr.ProcessState.String()).Debug("follower stopped")
		return nil
	}
	return errors.Wrap(err, "follower")
}
