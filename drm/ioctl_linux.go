//go:build linux

package drm

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DRM ioctl numbers, encoded the same way the kernel's <drm/drm.h>
// does:
//
//	_IO(type, nr)         = (type << 8) | nr
//	_IOR(type, nr, size)  = 0x80000000 | (size << 16) | (type << 8) | nr
//	_IOW(type, nr, size)  = 0x40000000 | (size << 16) | (type << 8) | nr
//	_IOWR(type, nr, size) = 0xC0000000 | (size << 16) | (type << 8) | nr
//
// Sizes are for the 64-bit struct layouts (amd64/arm64); this package
// targets 64-bit Linux only.
const (
	ioctlSetMaster  = 0x641e
	ioctlDropMaster = 0x641f

	ioctlGetCap       = 0xc010640c
	ioctlSetClientCap = 0x4010640d

	ioctlModeGetResources       = 0xc04064a0
	ioctlModeGetCrtc            = 0xc06864a1
	ioctlModeSetCrtc            = 0xc06864a2
	ioctlModeGetEncoder         = 0xc01464a6
	ioctlModeGetConnector       = 0xc05064a7
	ioctlModeGetProperty        = 0xc04064aa
	ioctlModeObjGetProperties   = 0xc02064b9
	ioctlModeObjSetProperty     = 0xc01864ba
	ioctlModeAddFb              = 0xc01c64ae
	ioctlModeRmFb               = 0xc00464af
	ioctlModePageFlip           = 0xc01864b0
	ioctlModeCreateDumb         = 0xc02064b2
	ioctlModeMapDumb            = 0xc01064b3
	ioctlModeDestroyDumb        = 0xc00464b4
	ioctlModeGetPlaneResources  = 0xc01064b5
	ioctlModeGetPlane           = 0xc02064b6
	ioctlModeSetPlane           = 0xc03064b7
	ioctlModeAddFb2             = 0xc06864b8
	ioctlModeCreatePropBlob     = 0xc01064bd
	ioctlModeDestroyPropBlob    = 0xc00464be
	ioctlModeAtomic             = 0xc03864bc
	ioctlModeCreateLease        = 0xc01864c6
	ioctlModeRevokeLease        = 0x400464c9
	ioctlPrimeFdToHandle        = 0xc00c642e
	ioctlPrimeHandleToFd        = 0xc00c642d
	ioctlGemClose               = 0x4008640a

	drmClientCapUniversalPlanes = 2
	drmClientCapAtomic          = 3

	// DRM_MODE_ATOMIC_TEST_ONLY / ALLOW_MODESET / NONBLOCK, passed as
	// flags to DRM_IOCTL_MODE_ATOMIC.
	modeAtomicTestOnly    = 1 << 0
	modeAtomicNonblock    = 1 << 1
	modeAtomicAllowModeset = 1 << 2

	modeFbModifiers = 1 << 1

	modePropBlob = 1 << 4
)

type drmGetCap struct {
	Capability uint64
	Value      uint64
}

type drmSetClientCap struct {
	Capability uint64
	Value      uint64
}

type modeCardRes struct {
	FbIDPtr         uint64
	CrtcIDPtr       uint64
	ConnectorIDPtr  uint64
	EncoderIDPtr    uint64
	CountFbs        uint32
	CountCrtcs      uint32
	CountConnectors uint32
	CountEncoders   uint32
	MinWidth        uint32
	MaxWidth        uint32
	MinHeight       uint32
	MaxHeight       uint32
}

type modeGetConnector struct {
	EncodersPtr     uint64
	ModesPtr        uint64
	PropsPtr        uint64
	PropValuesPtr   uint64
	CountModes      uint32
	CountProps      uint32
	CountEncoders   uint32
	EncoderID       uint32
	ConnectorID     uint32
	ConnectorType   uint32
	ConnectorTypeID uint32
	Connection      uint32
	MmWidth         uint32
	MmHeight        uint32
	Subpixel        uint32
	Pad             uint32
}

type modeGetEncoder struct {
	EncoderID     uint32
	EncoderType   uint32
	CrtcID        uint32
	PossibleCrtcs uint32
	PossibleClones uint32
}

type modeModeInfo struct {
	Clock      uint32
	Hdisplay   uint16
	HsyncStart uint16
	HsyncEnd   uint16
	Htotal     uint16
	Hskew      uint16
	Vdisplay   uint16
	VsyncStart uint16
	VsyncEnd   uint16
	Vtotal     uint16
	Vscan      uint16
	Vrefresh   uint32
	Flags      uint32
	Type       uint32
	Name       [32]byte
}

type modeCrtc struct {
	SetConnectorsPtr uint64
	CountConnectors  uint32
	CrtcID           uint32
	FbID             uint32
	X                uint32
	Y                uint32
	GammaSize        uint32
	ModeValid        uint32
	Mode             modeModeInfo
}

type modeGetProperty struct {
	ValuesPtr   uint64
	EnumBlobPtr uint64
	PropID      uint32
	Flags       uint32
	Name        [32]byte
	CountValues uint32
	CountEnum   uint32
}

type modeObjGetProperties struct {
	PropsPtr      uint64
	PropValuesPtr uint64
	CountProps    uint32
	ObjID         uint32
	ObjType       uint32
}

type modeObjSetProperty struct {
	Value   uint64
	PropID  uint32
	ObjID   uint32
	ObjType uint32
}

type modeGetPlaneResources struct {
	PlaneIDPtr   uint64
	CountPlanes  uint32
}

type modeGetPlane struct {
	PlaneID         uint32
	CrtcID          uint32
	FbID            uint32
	PossibleCrtcs   uint32
	GammaSize       uint32
	CountFormatTypes uint32
	FormatTypePtr   uint64
}

type modeSetPlane struct {
	PlaneID uint32
	CrtcID  uint32
	FbID    uint32
	Flags   uint32

	CrtcX, CrtcY           int32
	CrtcW, CrtcH           uint32
	SrcX, SrcY, SrcW, SrcH uint32 // 16.16 fixed point
}

type modeFbCmd struct {
	FbID   uint32
	Width  uint32
	Height uint32
	Pitch  uint32
	Bpp    uint32
	Depth  uint32
	Handle uint32
}

type modeFbCmd2 struct {
	FbID       uint32
	Width      uint32
	Height     uint32
	PixelFmt   uint32
	Flags      uint32
	Handles    [4]uint32
	Pitches    [4]uint32
	Offsets    [4]uint32
	Modifier   [4]uint64
}

type modeCreatePropBlob struct {
	DataPtr uint64
	Length  uint32
	BlobID  uint32
}

type modeDestroyPropBlob struct {
	BlobID uint32
}

type modeAtomic struct {
	Flags         uint32
	CountObjs     uint32
	ObjsPtr       uint64
	CountPropsPtr uint64
	PropsPtr      uint64
	PropValuesPtr uint64
	ReservedPtr   uint64
	UserData      uint64
}

type modePageFlip struct {
	CrtcID   uint32
	FbID     uint32
	Flags    uint32
	Reserved uint32
	UserData uint64
}

type modeCreateDumb struct {
	Height uint32
	Width  uint32
	Bpp    uint32
	Flags  uint32
	Handle uint32
	Pitch  uint32
	Size   uint64
}

type modeMapDumb struct {
	Handle uint32
	Pad    uint32
	Offset uint64
}

type modeDestroyDumb struct {
	Handle uint32
}

type modeCreateLease struct {
	ObjectIDs   uint64
	ObjectCount uint32
	Flags       uint32
	LesseeID    uint32
	FD          int32
}

type modeRevokeLease struct {
	LesseeID uint32
}

type primeHandle struct {
	Handle uint32
	Flags  uint32
	FD     int32
}

type gemClose struct {
	Handle uint32
	Pad    uint32
}

func ptrUint[T any](v *T) uint64 {
	return uint64(uintptr(unsafe.Pointer(v)))
}

func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// openCard opens a DRM render or primary node and returns the file.
// The caller is responsible for calling setMaster if this is meant to
// be the display-controlling node.
func openCard(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func setMaster(f *os.File) error {
	if err := ioctl(f.Fd(), ioctlSetMaster, nil); err != nil {
		return fmt.Errorf("DRM_IOCTL_SET_MASTER: %w", err)
	}
	return nil
}

func dropMaster(f *os.File) error {
	if err := ioctl(f.Fd(), ioctlDropMaster, nil); err != nil {
		return fmt.Errorf("DRM_IOCTL_DROP_MASTER: %w", err)
	}
	return nil
}

func getCap(f *os.File, capability uint64) (uint64, error) {
	c := drmGetCap{Capability: capability}
	if err := ioctl(f.Fd(), ioctlGetCap, unsafe.Pointer(&c)); err != nil {
		return 0, fmt.Errorf("DRM_IOCTL_GET_CAP(%d): %w", capability, err)
	}
	return c.Value, nil
}

func setClientCap(f *os.File, capability, value uint64) error {
	c := drmSetClientCap{Capability: capability, Value: value}
	if err := ioctl(f.Fd(), ioctlSetClientCap, unsafe.Pointer(&c)); err != nil {
		return fmt.Errorf("DRM_IOCTL_SET_CLIENT_CAP(%d): %w", capability, err)
	}
	return nil
}

// supportsAtomic reports whether a device can be switched into
// universal-planes + atomic client-capability mode. The legacy driver
// is used as a fallback when this returns false.
func supportsAtomic(f *os.File) bool {
	if err := setClientCap(f, drmClientCapUniversalPlanes, 1); err != nil {
		return false
	}
	return setClientCap(f, drmClientCapAtomic, 1) == nil
}

func getResources(f *os.File) (crtcIDs, connectorIDs, encoderIDs []uint32, err error) {
	var res modeCardRes
	if err := ioctl(f.Fd(), ioctlModeGetResources, unsafe.Pointer(&res)); err != nil {
		return nil, nil, nil, fmt.Errorf("MODE_GETRESOURCES(count): %w", err)
	}
	if res.CountCrtcs == 0 || res.CountConnectors == 0 {
		return nil, nil, nil, ErrNoResources
	}

	crtcIDs = make([]uint32, res.CountCrtcs)
	connectorIDs = make([]uint32, res.CountConnectors)
	encoderIDs = make([]uint32, res.CountEncoders)

	res2 := modeCardRes{
		CountCrtcs:      res.CountCrtcs,
		CountConnectors: res.CountConnectors,
		CountEncoders:   res.CountEncoders,
	}
	if len(crtcIDs) > 0 {
		res2.CrtcIDPtr = uint64(uintptr(unsafe.Pointer(&crtcIDs[0])))
	}
	if len(connectorIDs) > 0 {
		res2.ConnectorIDPtr = uint64(uintptr(unsafe.Pointer(&connectorIDs[0])))
	}
	if len(encoderIDs) > 0 {
		res2.EncoderIDPtr = uint64(uintptr(unsafe.Pointer(&encoderIDs[0])))
	}

	if err := ioctl(f.Fd(), ioctlModeGetResources, unsafe.Pointer(&res2)); err != nil {
		return nil, nil, nil, fmt.Errorf("MODE_GETRESOURCES(fill): %w", err)
	}
	return crtcIDs, connectorIDs, encoderIDs, nil
}

func getPlaneResources(f *os.File) ([]uint32, error) {
	var r modeGetPlaneResources
	if err := ioctl(f.Fd(), ioctlModeGetPlaneResources, unsafe.Pointer(&r)); err != nil {
		return nil, fmt.Errorf("MODE_GETPLANERESOURCES(count): %w", err)
	}
	if r.CountPlanes == 0 {
		return nil, nil
	}
	ids := make([]uint32, r.CountPlanes)
	r2 := modeGetPlaneResources{
		PlaneIDPtr:  uint64(uintptr(unsafe.Pointer(&ids[0]))),
		CountPlanes: r.CountPlanes,
	}
	if err := ioctl(f.Fd(), ioctlModeGetPlaneResources, unsafe.Pointer(&r2)); err != nil {
		return nil, fmt.Errorf("MODE_GETPLANERESOURCES(fill): %w", err)
	}
	return ids, nil
}

func getPlane(f *os.File, planeID uint32) (modeGetPlane, []uint32, error) {
	p := modeGetPlane{PlaneID: planeID}
	if err := ioctl(f.Fd(), ioctlModeGetPlane, unsafe.Pointer(&p)); err != nil {
		return modeGetPlane{}, nil, fmt.Errorf("MODE_GETPLANE(%d, count): %w", planeID, err)
	}
	formats := make([]uint32, p.CountFormatTypes)
	if len(formats) > 0 {
		p2 := p
		p2.FormatTypePtr = uint64(uintptr(unsafe.Pointer(&formats[0])))
		if err := ioctl(f.Fd(), ioctlModeGetPlane, unsafe.Pointer(&p2)); err != nil {
			return modeGetPlane{}, nil, fmt.Errorf("MODE_GETPLANE(%d, fill): %w", planeID, err)
		}
		p = p2
	}
	return p, formats, nil
}

func getObjectProperties(f *os.File, objID, objType uint32) (ids []uint32, values []uint64, err error) {
	r := modeObjGetProperties{ObjID: objID, ObjType: objType}
	if err := ioctl(f.Fd(), ioctlModeObjGetProperties, unsafe.Pointer(&r)); err != nil {
		return nil, nil, fmt.Errorf("MODE_OBJ_GETPROPERTIES(%d, count): %w", objID, err)
	}
	if r.CountProps == 0 {
		return nil, nil, nil
	}
	ids = make([]uint32, r.CountProps)
	values = make([]uint64, r.CountProps)
	r2 := modeObjGetProperties{
		ObjID:         objID,
		ObjType:       objType,
		CountProps:    r.CountProps,
		PropsPtr:      uint64(uintptr(unsafe.Pointer(&ids[0]))),
		PropValuesPtr: uint64(uintptr(unsafe.Pointer(&values[0]))),
	}
	if err := ioctl(f.Fd(), ioctlModeObjGetProperties, unsafe.Pointer(&r2)); err != nil {
		return nil, nil, fmt.Errorf("MODE_OBJ_GETPROPERTIES(%d, fill): %w", objID, err)
	}
	return ids, values, nil
}

func getProperty(f *os.File, propID uint32) (name string, err error) {
	var p modeGetProperty
	p.PropID = propID
	if err := ioctl(f.Fd(), ioctlModeGetProperty, unsafe.Pointer(&p)); err != nil {
		return "", fmt.Errorf("MODE_GETPROPERTY(%d): %w", propID, err)
	}
	n := 0
	for n < len(p.Name) && p.Name[n] != 0 {
		n++
	}
	return string(p.Name[:n]), nil
}

func setObjectProperty(f *os.File, objID, objType, propID uint32, value uint64) error {
	r := modeObjSetProperty{ObjID: objID, ObjType: objType, PropID: propID, Value: value}
	if err := ioctl(f.Fd(), ioctlModeObjSetProperty, unsafe.Pointer(&r)); err != nil {
		return fmt.Errorf("MODE_OBJ_SETPROPERTY(%d, %d): %w", objID, propID, err)
	}
	return nil
}

func createPropertyBlob(f *os.File, data []byte) (uint32, error) {
	r := modeCreatePropBlob{
		DataPtr: uint64(uintptr(unsafe.Pointer(&data[0]))),
		Length:  uint32(len(data)),
	}
	if err := ioctl(f.Fd(), ioctlModeCreatePropBlob, unsafe.Pointer(&r)); err != nil {
		return 0, fmt.Errorf("MODE_CREATEPROPBLOB: %w", err)
	}
	return r.BlobID, nil
}

func destroyPropertyBlob(f *os.File, blobID uint32) error {
	if blobID == 0 {
		return nil
	}
	r := modeDestroyPropBlob{BlobID: blobID}
	if err := ioctl(f.Fd(), ioctlModeDestroyPropBlob, unsafe.Pointer(&r)); err != nil {
		return fmt.Errorf("MODE_DESTROYPROPBLOB(%d): %w", blobID, err)
	}
	return nil
}

// atomicCommit issues DRM_IOCTL_MODE_ATOMIC with parallel id/value
// arrays already grouped by object.
func atomicCommit(f *os.File, objs []uint32, propCounts []uint32, props []uint32, values []uint64, flags uint32, userData uint64) error {
	r := modeAtomic{
		Flags:         flags,
		CountObjs:     uint32(len(objs)),
		UserData:      userData,
	}
	if len(objs) > 0 {
		r.ObjsPtr = uint64(uintptr(unsafe.Pointer(&objs[0])))
		r.CountPropsPtr = uint64(uintptr(unsafe.Pointer(&propCounts[0])))
	}
	if len(props) > 0 {
		r.PropsPtr = uint64(uintptr(unsafe.Pointer(&props[0])))
		r.PropValuesPtr = uint64(uintptr(unsafe.Pointer(&values[0])))
	}
	if err := ioctl(f.Fd(), ioctlModeAtomic, unsafe.Pointer(&r)); err != nil {
		if flags&modeAtomicTestOnly != 0 {
			return fmt.Errorf("%w: %v", ErrTestFailed, err)
		}
		return fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}
	return nil
}

func setCrtcLegacy(f *os.File, crtcID, fbID uint32, x, y uint32, connectorIDs []uint32, mode *modeModeInfo) error {
	c := modeCrtc{
		CrtcID:    crtcID,
		FbID:      fbID,
		X:         x,
		Y:         y,
		ModeValid: 0,
	}
	if len(connectorIDs) > 0 {
		c.SetConnectorsPtr = uint64(uintptr(unsafe.Pointer(&connectorIDs[0])))
		c.CountConnectors = uint32(len(connectorIDs))
	}
	if mode != nil {
		c.ModeValid = 1
		c.Mode = *mode
	}
	if err := ioctl(f.Fd(), ioctlModeSetCrtc, unsafe.Pointer(&c)); err != nil {
		return fmt.Errorf("%w: MODE_SETCRTC: %v", ErrCommitFailed, err)
	}
	return nil
}

func pageFlipLegacy(f *os.File, crtcID, fbID uint32, flags uint32, userData uint64) error {
	p := modePageFlip{CrtcID: crtcID, FbID: fbID, Flags: flags, UserData: userData}
	if err := ioctl(f.Fd(), ioctlModePageFlip, unsafe.Pointer(&p)); err != nil {
		return fmt.Errorf("%w: MODE_PAGE_FLIP: %v", ErrCommitFailed, err)
	}
	return nil
}

func addFB2(f *os.File, width, height, pixelFmt uint32, handles, pitches, offsets [4]uint32, modifiers [4]uint64, withModifiers bool) (uint32, error) {
	cmd := modeFbCmd2{
		Width:    width,
		Height:   height,
		PixelFmt: pixelFmt,
		Handles:  handles,
		Pitches:  pitches,
		Offsets:  offsets,
	}
	if withModifiers {
		cmd.Flags = modeFbModifiers
		cmd.Modifier = modifiers
	}
	if err := ioctl(f.Fd(), ioctlModeAddFb2, unsafe.Pointer(&cmd)); err != nil {
		return 0, err
	}
	return cmd.FbID, nil
}

func addFB(f *os.File, width, height, depth, bpp, pitch, handle uint32) (uint32, error) {
	cmd := modeFbCmd{Width: width, Height: height, Depth: depth, Bpp: bpp, Pitch: pitch, Handle: handle}
	if err := ioctl(f.Fd(), ioctlModeAddFb, unsafe.Pointer(&cmd)); err != nil {
		return 0, err
	}
	return cmd.FbID, nil
}

func rmFB(f *os.File, fbID uint32) error {
	id := fbID
	return ioctl(f.Fd(), ioctlModeRmFb, unsafe.Pointer(&id))
}

func primeFDToHandle(f *os.File, primeFD int) (uint32, error) {
	h := primeHandle{FD: int32(primeFD)}
	if err := ioctl(f.Fd(), ioctlPrimeFdToHandle, unsafe.Pointer(&h)); err != nil {
		return 0, fmt.Errorf("DRM_IOCTL_PRIME_FD_TO_HANDLE: %w", err)
	}
	return h.Handle, nil
}

func closeBufferHandle(f *os.File, handle uint32) error {
	h := gemClose{Handle: handle}
	if err := ioctl(f.Fd(), ioctlGemClose, unsafe.Pointer(&h)); err != nil {
		return fmt.Errorf("DRM_IOCTL_GEM_CLOSE(%d): %w", handle, err)
	}
	return nil
}

func createLease(f *os.File, objectIDs []uint32) (leaseFD int, lesseeID uint32, err error) {
	if len(objectIDs) == 0 {
		return -1, 0, fmt.Errorf("drm: createLease with no object IDs")
	}
	req := modeCreateLease{
		ObjectIDs:   uint64(uintptr(unsafe.Pointer(&objectIDs[0]))),
		ObjectCount: uint32(len(objectIDs)),
	}
	if err := ioctl(f.Fd(), ioctlModeCreateLease, unsafe.Pointer(&req)); err != nil {
		return -1, 0, fmt.Errorf("MODE_CREATE_LEASE: %w", err)
	}
	return int(req.FD), req.LesseeID, nil
}

func revokeLease(f *os.File, lesseeID uint32) error {
	req := modeRevokeLease{LesseeID: lesseeID}
	if err := ioctl(f.Fd(), ioctlModeRevokeLease, unsafe.Pointer(&req)); err != nil {
		return fmt.Errorf("%w: MODE_REVOKE_LEASE(%d): %v", ErrLeaseRevoked, lesseeID, err)
	}
	return nil
}
