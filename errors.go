package wlrcore

import "errors"

// Common errors, per spec.md §7's error-kind taxonomy. Package-local
// errors (BufferImportFailed, KmsRejected, ...) live in drm/output's
// own errors.go; these are the ones that belong to no single package.
var (
	// ErrNoBackendRegistered is returned when no backend variant is
	// registered under the requested name.
	ErrNoBackendRegistered = errors.New("wlrcore: no backend registered")

	// ErrRendererLost is returned when the active renderer context is
	// lost (GPU reset, device removal); the compositor must recreate
	// it from scratch.
	ErrRendererLost = errors.New("wlrcore: renderer lost")

	// ErrGPURemoved is returned when a DRM device disappears out from
	// under a running backend; the backend destroys itself.
	ErrGPURemoved = errors.New("wlrcore: GPU device removed")

	// ErrSessionInactive is returned when an operation that requires
	// an active session (VT foreground) is attempted while inactive.
	ErrSessionInactive = errors.New("wlrcore: session is not active")

	// ErrSessionTimeout is returned when session activation does not
	// complete within the bounded wait (spec.md §5: 10s).
	ErrSessionTimeout = errors.New("wlrcore: timed out waiting for session activation")
)
