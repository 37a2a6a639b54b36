//go:build linux

package output

import "errors"

// Sentinel errors for the output abstraction's test/commit pipeline,
// one per spec.md §7 error kind that belongs to this package.
var (
	// ErrKmsRejected is returned when the backend's test or commit
	// call rejects the staged state.
	ErrKmsRejected = errors.New("output: backend rejected state")

	// ErrSessionInactive names a commit attempted while the session is
	// inactive. TestState and CommitState do not consult the session
	// and do not return this error; an inactive session is not checked
	// before the backend driver is called.
	ErrSessionInactive = errors.New("output: session is not active")

	// ErrTimelineUnsupported is returned when a commit names a wait or
	// signal timeline but the backend has no syncobj-timeline support.
	ErrTimelineUnsupported = errors.New("output: backend has no timeline support")

	// ErrNoMode is returned when ENABLED is requested true with no
	// mode available (neither a fixed mode nor the output's current
	// one).
	ErrNoMode = errors.New("output: enabling requires a mode")

	// ErrEmptyResolution is returned when the resulting resolution
	// from a mode (fixed or custom) is zero in either dimension.
	ErrEmptyResolution = errors.New("output: resulting resolution is empty")

	// ErrAdaptiveSyncUnsupported is returned when adaptive sync is
	// requested but the connector does not advertise support.
	ErrAdaptiveSyncUnsupported = errors.New("output: connector does not support adaptive sync")

	// ErrBufferOutOfBounds is returned when a buffer's source box does
	// not lie within the buffer, or is empty.
	ErrBufferOutOfBounds = errors.New("output: buffer source box is out of bounds")

	// ErrDestinationEmpty is returned when a buffer's destination box,
	// clipped to the pending resolution, is empty.
	ErrDestinationEmpty = errors.New("output: buffer destination box is empty after clipping")

	// ErrTearingRequiresNewBuffer is returned when tearing is requested
	// without a new buffer in the same commit.
	ErrTearingRequiresNewBuffer = errors.New("output: tearing requires a new buffer in the same commit")

	// ErrLayerMissing is returned when a layers commit omits a layer
	// that currently exists on the output.
	ErrLayerMissing = errors.New("output: committed layer list omits an existing layer")

	// ErrImageDescriptionUnsupported is returned when a commit names
	// primaries or a transfer function the connector does not list as
	// supported.
	ErrImageDescriptionUnsupported = errors.New("output: connector does not support requested image description")
)
