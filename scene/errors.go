//go:build linux

package scene

import "errors"

// Sentinel errors for the scene graph, one per spec.md §7 error kind
// that belongs to this package plus the direct scan-out refusal
// reasons spec.md §4.7.5 enumerates.
var (
	// ErrScanoutNotSingleNode is returned when a scene-output's render
	// list does not contain exactly one node.
	ErrScanoutNotSingleNode = errors.New("scene: direct scan-out requires exactly one render-list node")

	// ErrScanoutNotBuffer is returned when the sole render-list node is
	// not a buffer node.
	ErrScanoutNotBuffer = errors.New("scene: direct scan-out requires a buffer node")

	// ErrScanoutColorTransform is returned when a non-identity colour
	// transform is in effect.
	ErrScanoutColorTransform = errors.New("scene: direct scan-out refused, a colour transform is applied")

	// ErrScanoutDebugHighlight is returned when the debug highlight
	// damage mode is active, which must render every frame.
	ErrScanoutDebugHighlight = errors.New("scene: direct scan-out refused, debug damage highlight is active")

	// ErrScanoutSoftwareCursor is returned when the output has one or
	// more software-composited cursors.
	ErrScanoutSoftwareCursor = errors.New("scene: direct scan-out refused, output has software cursors")

	// ErrScanoutTransformMismatch is returned when the buffer's
	// transform does not equal the output's transform.
	ErrScanoutTransformMismatch = errors.New("scene: direct scan-out refused, buffer transform does not match output transform")

	// ErrScanoutRejected is returned when the candidate output state
	// built for direct scan-out fails TestState.
	ErrScanoutRejected = errors.New("scene: direct scan-out candidate state rejected")
)
