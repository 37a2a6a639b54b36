package gmath

// Fixed1616 is a 16.16 fixed-point number: the format the kernel DRM
// API uses for plane source boxes (SRC_X/Y/W/H are 16.16 fixed-point
// in the atomic property blob) and mode-blob refresh computations.
// Same two-method shape as the Wayland wire protocol's 24.8 Fixed
// type, with the point shifted for KMS's wider fractional field.
type Fixed1616 int32

// FixedFromFloat converts a float64 to Fixed1616.
func FixedFromFloat(f float64) Fixed1616 {
	return Fixed1616(f * 65536.0)
}

// Float returns the Fixed1616 value as a float64.
func (f Fixed1616) Float() float64 {
	return float64(f) / 65536.0
}

// FixedFromInt converts an integer to Fixed1616.
func FixedFromInt(i int32) Fixed1616 {
	return Fixed1616(i << 16)
}

// Int returns the integer part of the Fixed1616 value, truncating the
// fractional component.
func (f Fixed1616) Int() int32 {
	return int32(f) >> 16
}
