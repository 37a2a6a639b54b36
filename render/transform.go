package render

// Transform names one of the eight wl_output transform values: a
// rotation in 90-degree steps, optionally preceded by a horizontal
// flip. It is carried by both a scene buffer (the orientation its
// pixels need before they match output space) and an output's
// pending state (the orientation the backend presents in), and the
// direct-scanout path requires the two to be equal.
type Transform uint8

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// Flipped reports whether t includes a horizontal flip.
func (t Transform) Flipped() bool {
	return t >= TransformFlipped
}

// Rotation returns the rotation component in degrees (0, 90, 180, 270),
// independent of whether t is flipped.
func (t Transform) Rotation() int {
	return int(t%4) * 90
}

// Invert returns the transform that undoes t.
func (t Transform) Invert() Transform {
	if t.Flipped() {
		return t
	}
	if t == TransformNormal {
		return TransformNormal
	}
	return Transform(4 - int(t))
}

// String names the transform the way wl_output.transform does.
func (t Transform) String() string {
	names := [...]string{
		"normal", "90", "180", "270",
		"flipped", "flipped-90", "flipped-180", "flipped-270",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}
