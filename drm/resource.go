//go:build linux

package drm

import (
	"fmt"
	"log/slog"
	"os"
	"unsafe"
)

// ConnectorStatus mirrors drmModeConnection.
type ConnectorStatus uint32

const (
	ConnectorConnected ConnectorStatus = 1 + iota
	ConnectorDisconnected
	ConnectorUnknown
)

// PlaneType identifies which of the three KMS plane roles a Plane
// fills. This is a tagged union discriminator rather than a separate
// interface per role, so a render list walk never allocates to learn
// a plane's kind.
type PlaneType uint8

const (
	PlaneTypeOverlay PlaneType = iota
	PlaneTypePrimary
	PlaneTypeCursor
)

// object identifies a DRM mode object's KMS object-type tag, needed
// to call DRM_IOCTL_MODE_OBJ_GETPROPERTIES/SETPROPERTY.
const (
	objTypeCrtc      = 0xcccccccc
	objTypeConnector = 0xc0c0c0c0
	objTypePlane     = 0xeeeeeeee
)

// Property is a named, resolved KMS property value on some object.
type Property struct {
	ID    uint32
	Name  string
	Value uint64
}

// Connector represents one physical output connector (HDMI, DP,
// eDP, ...). Connectors are enumerated once at backend start and
// re-probed on a hotplug uevent.
type Connector struct {
	ID            uint32
	Name          string
	Status        ConnectorStatus
	PossibleCrtcs uint32 // bitmask of CRTC indices this connector can drive
	Modes         []Mode
	MmWidth       uint32
	MmHeight      uint32
	Subpixel      uint32
	Properties    map[string]Property

	currentEncoderID uint32
}

// PreferredMode returns the connector's preferred mode, or the first
// advertised mode if none is marked preferred.
func (c *Connector) PreferredMode() (Mode, bool) {
	for _, m := range c.Modes {
		if m.Preferred {
			return m, true
		}
	}
	if len(c.Modes) > 0 {
		return c.Modes[0], true
	}
	return Mode{}, false
}

// CRTC represents one display controller: the scan-out engine that
// reads a framebuffer through a primary plane and drives a connector
// through an encoder.
type CRTC struct {
	ID         uint32
	Index      int // position in the resource list; PossibleCrtcs bits refer to this
	GammaSize  uint32
	Properties map[string]Property

	// Planes usable by this CRTC, populated once at enumeration time.
	Primary *Plane
	Cursor  *Plane
	Overlay []*Plane
}

// Plane represents a KMS plane: primary, cursor, or overlay.
type Plane struct {
	ID            uint32
	Type          PlaneType
	PossibleCrtcs uint32
	Formats       []uint32 // FourCC codes this plane can scan out
	Properties    map[string]Property
}

// Resources holds the enumerated state of one DRM card: every
// connector, CRTC, and plane, read once and refreshed on demand.
type Resources struct {
	file       *os.File
	log        *slog.Logger
	Connectors []*Connector
	CRTCs      []*CRTC
	Planes     []*Plane
}

func loadResources(f *os.File, log *slog.Logger) (*Resources, error) {
	crtcIDs, connectorIDs, _, err := getResources(f)
	if err != nil {
		return nil, fmt.Errorf("load DRM resources: %w", err)
	}

	r := &Resources{file: f, log: log}

	for i, id := range crtcIDs {
		crtc, err := loadCRTC(f, id, i)
		if err != nil {
			log.Warn("failed to load CRTC", "crtc_id", id, "error", err)
			continue
		}
		r.CRTCs = append(r.CRTCs, crtc)
	}

	planeIDs, err := getPlaneResources(f)
	if err != nil {
		return nil, fmt.Errorf("load plane resources: %w", err)
	}
	for _, id := range planeIDs {
		plane, err := loadPlane(f, id)
		if err != nil {
			log.Warn("failed to load plane", "plane_id", id, "error", err)
			continue
		}
		r.Planes = append(r.Planes, plane)
	}
	assignPlanesToCrtcs(r)

	for _, id := range connectorIDs {
		conn, err := loadConnector(f, id)
		if err != nil {
			log.Warn("failed to load connector", "connector_id", id, "error", err)
			continue
		}
		r.Connectors = append(r.Connectors, conn)
	}

	return r, nil
}

func loadCRTC(f *os.File, id uint32, index int) (*CRTC, error) {
	props, err := loadProperties(f, id, objTypeCrtc)
	if err != nil {
		return nil, err
	}
	c := &CRTC{ID: id, Index: index, Properties: props}
	if gs, ok := props["GAMMA_SIZE"]; ok {
		c.GammaSize = uint32(gs.Value)
	}
	return c, nil
}

func loadPlane(f *os.File, id uint32) (*Plane, error) {
	raw, formats, err := getPlane(f, id)
	if err != nil {
		return nil, err
	}
	props, err := loadProperties(f, id, objTypePlane)
	if err != nil {
		return nil, err
	}
	p := &Plane{ID: id, PossibleCrtcs: raw.PossibleCrtcs, Formats: formats, Properties: props}
	if t, ok := props["type"]; ok {
		switch t.Value {
		case 1:
			p.Type = PlaneTypePrimary
		case 2:
			p.Type = PlaneTypeCursor
		default:
			p.Type = PlaneTypeOverlay
		}
	}
	return p, nil
}

func assignPlanesToCrtcs(r *Resources) {
	for _, crtc := range r.CRTCs {
		for _, p := range r.Planes {
			if p.PossibleCrtcs&(1<<uint(crtc.Index)) == 0 {
				continue
			}
			switch p.Type {
			case PlaneTypePrimary:
				if crtc.Primary == nil {
					crtc.Primary = p
				}
			case PlaneTypeCursor:
				if crtc.Cursor == nil {
					crtc.Cursor = p
				}
			default:
				crtc.Overlay = append(crtc.Overlay, p)
			}
		}
	}
}

func loadConnector(f *os.File, id uint32) (*Connector, error) {
	var raw modeGetConnector
	raw.ConnectorID = id
	if err := ioctl(f.Fd(), ioctlModeGetConnector, unsafe.Pointer(&raw)); err != nil {
		return nil, fmt.Errorf("MODE_GETCONNECTOR(%d, count): %w", id, err)
	}

	modes := make([]modeModeInfo, raw.CountModes)
	encoders := make([]uint32, raw.CountEncoders)
	propIDs := make([]uint32, raw.CountProps)
	propVals := make([]uint64, raw.CountProps)

	raw2 := modeGetConnector{ConnectorID: id, CountModes: raw.CountModes, CountEncoders: raw.CountEncoders, CountProps: raw.CountProps}
	if len(modes) > 0 {
		raw2.ModesPtr = ptrUint(&modes[0])
	}
	if len(encoders) > 0 {
		raw2.EncodersPtr = ptrUint(&encoders[0])
	}
	if len(propIDs) > 0 {
		raw2.PropsPtr = ptrUint(&propIDs[0])
		raw2.PropValuesPtr = ptrUint(&propVals[0])
	}
	if err := ioctl(f.Fd(), ioctlModeGetConnector, unsafe.Pointer(&raw2)); err != nil {
		return nil, fmt.Errorf("MODE_GETCONNECTOR(%d, fill): %w", id, err)
	}

	c := &Connector{
		ID:               id,
		Name:             connectorName(raw2.ConnectorType, raw2.ConnectorTypeID),
		Status:           ConnectorStatus(raw2.Connection),
		MmWidth:          raw2.MmWidth,
		MmHeight:         raw2.MmHeight,
		Subpixel:         raw2.Subpixel,
		currentEncoderID: raw2.EncoderID,
		Properties:       make(map[string]Property, len(propIDs)),
	}
	for i, pid := range propIDs {
		name, err := getProperty(f, pid)
		if err != nil {
			continue
		}
		c.Properties[name] = Property{ID: pid, Name: name, Value: propVals[i]}
	}
	for i, m := range modes {
		c.Modes = append(c.Modes, modeFromRaw(m, i == 0))
	}
	if len(encoders) > 0 {
		c.PossibleCrtcs = possibleCrtcsForEncoder(f, encoders[0])
	}
	return c, nil
}

func possibleCrtcsForEncoder(f *os.File, encoderID uint32) uint32 {
	var enc modeGetEncoder
	enc.EncoderID = encoderID
	if err := ioctl(f.Fd(), ioctlModeGetEncoder, unsafe.Pointer(&enc)); err != nil {
		return 0
	}
	return enc.PossibleCrtcs
}

func loadProperties(f *os.File, objID, objType uint32) (map[string]Property, error) {
	ids, values, err := getObjectProperties(f, objID, objType)
	if err != nil {
		return nil, err
	}
	props := make(map[string]Property, len(ids))
	for i, id := range ids {
		name, err := getProperty(f, id)
		if err != nil {
			continue
		}
		props[name] = Property{ID: id, Name: name, Value: values[i]}
	}
	return props, nil
}

var connectorTypeNames = map[uint32]string{
	0:  "Unknown",
	1:  "VGA",
	2:  "DVI-I",
	3:  "DVI-D",
	4:  "DVI-A",
	5:  "Composite",
	6:  "SVIDEO",
	7:  "LVDS",
	8:  "Component",
	9:  "9PinDIN",
	10: "DisplayPort",
	11: "HDMI-A",
	12: "HDMI-B",
	13: "TV",
	14: "eDP",
	15: "Virtual",
	16: "DSI",
	17: "DPI",
	18: "Writeback",
	19: "SPI",
	20: "USB",
}

func connectorName(connType, typeID uint32) string {
	name, ok := connectorTypeNames[connType]
	if !ok {
		name = "Unknown"
	}
	return fmt.Sprintf("%s-%d", name, typeID)
}
