package scan

import "context"

// Progress is one progress update from a running scan
type Progress struct {
	Current int
	Total   int
	Path    string
}

// Job is a scan running on its own goroutine. Progress updates stream on
// a buffered channel with non-blocking sends: a slow consumer misses
// updates but can never stall the scan. The final result is available
// once Done is closed.
type Job struct {
	progress chan Progress
	done     chan struct{}
	result   *Result
	err      error
}

// Start launches a scan in the background and returns immediately
func Start(ctx context.Context, ix *Indexer, root string) *Job {
	j := &Job{
		progress: make(chan Progress, 64),
		done:     make(chan struct{}),
	}

	go func() {
		defer close(j.done)
		j.result, j.err = ix.Scan(ctx, root, func(current, total int, path string) {
			select {
			case j.progress <- Progress{Current: current, Total: total, Path: path}:
			default:
			}
		})
		close(j.progress)
	}()

	return j
}

// Progress returns the progress channel. It is closed when the scan ends.
func (j *Job) Progress() <-chan Progress {
	return j.progress
}

// Done returns a channel closed when the scan has finished
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result returns the scan outcome. Valid only after Done is closed.
func (j *Job) Result() (*Result, error) {
	return j.result, j.err
}

// Wait blocks until the scan finishes and returns its outcome
func (j *Job) Wait() (*Result, error) {
	<-j.done
	return j.result, j.err
}
