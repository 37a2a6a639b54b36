package render

import "time"

// Timer is a GPU timer query handle returned by Renderer.NewTimer and
// attached to a BufferPass, letting a caller measure how long a
// render pass actually took on the GPU rather than on the CPU
// submitting it.
type Timer interface {
	// Duration blocks until the query resolves and returns the
	// elapsed GPU time. ok is false if the query was never submitted
	// or the backend has no timer-query support.
	Duration() (d time.Duration, ok bool)
	Destroy()
}
