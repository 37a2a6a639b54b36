package drm

import "errors"

// Sentinel errors for the DRM/KMS output subsystem. Each names one
// of the error kinds the commit pipeline and resource model can
// produce; wrap with fmt.Errorf("%w", ...) for context and match with
// errors.Is.
var (
	// ErrNoResources is returned when a card has no usable CRTCs or
	// connectors.
	ErrNoResources = errors.New("drm: no usable CRTCs or connectors")

	// ErrNoFreeCrtc is returned by the connector/CRTC matcher when no
	// assignment satisfies every connector that must be enabled.
	ErrNoFreeCrtc = errors.New("drm: no free CRTC for connector")

	// ErrBufferNotScanoutCapable is returned when a buffer cannot be
	// imported into KMS under any format substitution.
	ErrBufferNotScanoutCapable = errors.New("drm: buffer is not scanout-capable")

	// ErrBufferPoisoned is returned when drm_fb_import is retried on a
	// buffer previously marked poisoned, short-circuiting a known-bad
	// import attempt.
	ErrBufferPoisoned = errors.New("drm: buffer previously failed KMS import")

	// ErrTestFailed is returned when an atomic TEST_ONLY commit is
	// rejected by the kernel.
	ErrTestFailed = errors.New("drm: atomic test commit rejected")

	// ErrCommitFailed is returned when a non-test commit is rejected.
	ErrCommitFailed = errors.New("drm: commit rejected")

	// ErrNoAtomicSupport is returned when the atomic driver is
	// requested on a device lacking DRM_CLIENT_CAP_ATOMIC.
	ErrNoAtomicSupport = errors.New("drm: device has no atomic modesetting support")

	// ErrLeaseRevoked is returned when an operation is attempted on a
	// revoked lease.
	ErrLeaseRevoked = errors.New("drm: lease has been revoked")

	// ErrUnsupportedImageDescription is returned when a commit names
	// primaries or a transfer function the connector does not support.
	ErrUnsupportedImageDescription = errors.New("drm: connector does not support requested image description")

	// ErrPropertyNotFound is returned when an object lacks a property
	// name the caller expected it to advertise.
	ErrPropertyNotFound = errors.New("drm: property not found on object")

	// ErrSessionInactive is returned by a commit attempted while the
	// owning Session is inactive (VT switched away); spec.md §7's
	// "commits short-circuit to false" kind.
	ErrSessionInactive = errors.New("drm: session is inactive")

	// ErrSessionActivationTimeout is returned when WaitActive's bounded
	// wait (spec.md §5's "initial session-activation wait, bounded to
	// 10s") elapses before the session becomes active.
	ErrSessionActivationTimeout = errors.New("drm: session activation timed out")
)
