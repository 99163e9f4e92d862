package lwf

// Matrix is the animation format's 2D affine transform. The linear part is
//
//	| ScaleX  Skew0 |
//	| Skew1   ScaleY |
//
// followed by the translation (TranslateX, TranslateY). Y grows downward.
type Matrix struct {
	ScaleX, ScaleY float64
	Skew0, Skew1   float64
	TranslateX     float64
	TranslateY     float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{ScaleX: 1, ScaleY: 1}
}

// Equal reports whether all six fields are exactly equal.
func (m Matrix) Equal(o Matrix) bool {
	return m.ScaleX == o.ScaleX &&
		m.ScaleY == o.ScaleY &&
		m.Skew0 == o.Skew0 &&
		m.Skew1 == o.Skew1 &&
		m.TranslateX == o.TranslateX &&
		m.TranslateY == o.TranslateY
}

// Transform applies m to the point (x, y).
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m.ScaleX*x + m.Skew0*y + m.TranslateX,
		m.Skew1*x + m.ScaleY*y + m.TranslateY
}

// Color is a normalized RGBA color with components in [0, 1].
type Color struct {
	Red, Green, Blue, Alpha float64
}

// ColorTransform is a multiplicative tint applied to a display object.
type ColorTransform struct {
	Multi Color
}

// IdentityColorTransform returns a tint that leaves colors unchanged.
func IdentityColorTransform() ColorTransform {
	return ColorTransform{Multi: Color{1, 1, 1, 1}}
}

// Text is a text field descriptor. The IDs index the shared tables in Data.
type Text struct {
	NameStringID   int // -1 when the field is unnamed
	StringID       int
	ColorID        int
	TextPropertyID int
	Width, Height  float64
}

// Alignment bits of TextProperty.Align. Horizontal and vertical alignment are
// stored in separate bit fields.
const (
	AlignLeft   = 0
	AlignRight  = 1
	AlignCenter = 2
	AlignMask   = 0x3

	AlignVerticalBottom = 1 << 2
	AlignVerticalMiddle = 2 << 2
	AlignVerticalMask   = 0xc
)

// TextProperty holds the typographic attributes shared by text fields.
type TextProperty struct {
	FontHeight    float64
	Align         int
	StrokeColorID int // -1 when the text has no stroke; ignored at zero width
	StrokeWidth   float64
}
