package willow

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorFromBytes converts 8-bit channels to a normalized Color.
func ColorFromBytes(r, g, b, a uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// Bytes returns the color as 8-bit channels, rounded and clamped to [0, 255].
func (c Color) Bytes() (r, g, b, a uint8) {
	return clampByte(c.R * 255), clampByte(c.G * 255), clampByte(c.B * 255), clampByte(c.A * 255)
}

// toRGBA returns the premultiplied color.RGBA used by image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: clampByte(c.R * c.A * 255),
		G: clampByte(c.G * c.A * 255),
		B: clampByte(c.B * c.A * 255),
		A: clampByte(c.A * 255),
	}
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// WhitePixel is a 1x1 white image used by default for solid color sprites.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// TextureRegion is a rectangle on a registered page image.
// A zero-value region draws WhitePixel, which is how solid rectangles are made.
type TextureRegion struct {
	Page          uint16
	X, Y          uint16
	Width, Height uint16
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendErase                   // destination-out (punch transparent holes)
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders a TextureRegion or custom image
	NodeTypeText                      // renders a TextBlock with a TTF face
)

// TextAlign controls horizontal text alignment within a TextBlock.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// TextVAlign controls vertical text alignment within a TextBlock's box.
// It only has an effect when the block has a fixed Height.
type TextVAlign uint8

const (
	TextVAlignTop    TextVAlign = iota // first line touches the top edge (default)
	TextVAlignCenter                   // lines are centered in the box
	TextVAlignBottom                   // last line touches the bottom edge
)
