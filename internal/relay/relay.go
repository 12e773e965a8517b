// Package relay holds the channel plumbing shared by the console's
// producers: cancellable delivery and joinable background workers.
package relay

// Send delivers v on out unless cancel is closed first. It reports whether
// v was delivered. A cancel channel that is already closed always wins,
// even when out has room, so nothing is delivered after cancellation has
// been observed.
//
// Values received on cancel (as opposed to its closure) are ignored and the
// delivery attempt continues.
func Send[T any](cancel <-chan struct{}, out chan<- T, v T) bool {
	select {
	case _, ok := <-cancel:
		if !ok {
			return false
		}
	default:
	}
	for {
		select {
		case out <- v:
			return true
		case _, ok := <-cancel:
			if !ok {
				return false
			}
		}
	}
}

// Worker is a named background goroutine whose result can be joined.
type Worker struct {
	name string
	done chan struct{}
	err  error
}

// Go starts fn in a new goroutine.
func Go(name string, fn func() error) *Worker {
	w := &Worker{name: name, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		w.err = fn()
	}()
	return w
}

// Name returns the worker's name.
func (w *Worker) Name() string {
	return w.name
}

// Done is closed when the worker has returned.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until the worker returns and yields its error.
func (w *Worker) Wait() error {
	<-w.done
	return w.err
}
