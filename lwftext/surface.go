package lwftext

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/phanxgames/willow-lwf"
	"github.com/phanxgames/willow-lwf/lwf"
)

// SurfaceOptions describes a text surface to create.
type SurfaceOptions struct {
	Name    string
	Content string

	// UseTTF selects an outline font read from Fonts at FontName. Otherwise
	// FontName names a system font.
	UseTTF   bool
	FontName string
	Fonts    fs.FS
	Glyphs   willow.GlyphCollection

	// FontHeight is the authored height; see FontHeight for the conversion.
	FontHeight float64

	Width, Height float64
	Align         willow.TextAlign
	VAlign        willow.TextVAlign

	// Base is the authored text color. Stroke, when non-nil, outlines the
	// glyphs at StrokeWidth.
	Base        lwf.Color
	Stroke      *lwf.Color
	StrokeWidth float64
}

// composedTransform holds the 4x4 matrix a surface hands to its node.
type composedTransform struct {
	m willow.Mat4
}

// ComposedTransform implements willow.TransformSource.
func (c *composedTransform) ComposedTransform() willow.Mat4 {
	return c.m
}

var _ willow.TransformSource = (*composedTransform)(nil)

// TextSurface is a willow text node driven by LWF matrices and tints.
//
// The composed transform is rebuilt only when the incoming matrix differs
// from the last one applied. Color is recomputed on every call since it
// depends on the parent's displayed color as well as the tint.
type TextSurface struct {
	node       *willow.Node
	transform  composedTransform
	fontHeight float64
	height     float64
	base       lwf.Color

	last    lwf.Matrix
	hasLast bool

	rebuilds int
	r, g, b  uint8
	opacity  uint8
}

// NewTextSurface creates the text node and loads its font. The node is not
// attached to any parent.
func NewTextSurface(opts SurfaceOptions) (*TextSurface, error) {
	height := FontHeight(opts.FontHeight, opts.UseTTF)
	var (
		font *willow.TTFFont
		err  error
	)
	if opts.UseTTF {
		font, err = willow.LoadTTFConfig(opts.Fonts, willow.TTFConfig{
			FontFile: opts.FontName,
			Size:     height,
			Glyphs:   opts.Glyphs,
		})
	} else {
		font, err = willow.NewSystemFont(opts.FontName, height)
	}
	if err != nil {
		return nil, fmt.Errorf("lwftext: surface %q: %w", opts.Name, err)
	}

	n := willow.NewText(opts.Name, opts.Content, font)
	tb := n.TextBlock
	tb.SetDimensions(opts.Width, opts.Height)
	tb.Align = opts.Align
	tb.VAlign = opts.VAlign
	if opts.Stroke != nil && opts.StrokeWidth > 0 {
		tb.Outline = &willow.Outline{
			Color:     willow.Color{R: opts.Stroke.Red, G: opts.Stroke.Green, B: opts.Stroke.Blue, A: opts.Stroke.Alpha},
			Thickness: opts.StrokeWidth,
		}
	}
	// Opacity is composited against the parent in SetMatrixAndColorTransform.
	n.CascadeOpacity = false

	s := &TextSurface{
		node:       n,
		fontHeight: height,
		height:     opts.Height,
		base:       opts.Base,
		r:          255,
		g:          255,
		b:          255,
		opacity:    255,
	}
	s.transform.m = willow.IdentityMat4()
	n.TransformSource = &s.transform
	return s, nil
}

// ComposeMatrix builds the node transform for an LWF matrix and a text box
// of height h. The box is anchored at its bottom-left corner; the skew terms
// are negated and the translation corrected so the authored top-left lands
// on (tx, -ty).
func ComposeMatrix(m lwf.Matrix, h float64) willow.Mat4 {
	k0, k1 := m.Skew0, m.Skew1
	return willow.Mat4{
		m.ScaleX, -k0, 0, m.TranslateX + k0*h,
		-k1, m.ScaleY, 0, -m.TranslateY - m.ScaleY*h,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// SetMatrixAndColorTransform applies an LWF matrix and tint. parent is the
// node whose displayed color and opacity the tint is composited against.
func (s *TextSurface) SetMatrixAndColorTransform(parent *willow.Node, m *lwf.Matrix, cx *lwf.ColorTransform) {
	if !s.hasLast || !s.last.Equal(*m) {
		s.last = *m
		s.hasLast = true
		s.transform.m = ComposeMatrix(*m, s.height)
		s.node.MarkDirty()
		s.rebuilds++
	}

	dc := willow.ColorWhite
	opacity := 1.0
	if parent != nil {
		dc = parent.DisplayedColor()
		opacity = parent.DisplayedOpacity()
	}
	c := cx.Multi
	s.SetColor(
		channel(c.Red*s.base.Red*dc.R),
		channel(c.Green*s.base.Green*dc.G),
		channel(c.Blue*s.base.Blue*dc.B),
	)
	s.SetOpacity(channel(c.Alpha * opacity))
}

// channel converts a [0,1] product to a byte channel.
func channel(v float64) uint8 {
	v = math.Round(v * 255)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// SetColor sets the node's RGB tint.
func (s *TextSurface) SetColor(r, g, b uint8) {
	s.r, s.g, s.b = r, g, b
	s.node.Color.R = float64(r) / 255
	s.node.Color.G = float64(g) / 255
	s.node.Color.B = float64(b) / 255
}

// SetOpacity sets the node's alpha. An unchanged value leaves the node clean.
func (s *TextSurface) SetOpacity(a uint8) {
	if a == s.opacity {
		return
	}
	s.opacity = a
	s.node.SetAlpha(float64(a) / 255)
}

// Color returns the last RGB tint pushed to the node.
func (s *TextSurface) Color() (r, g, b uint8) {
	return s.r, s.g, s.b
}

// Opacity returns the last alpha pushed to the node.
func (s *TextSurface) Opacity() uint8 {
	return s.opacity
}

// SetVisible shows or hides the node. Becoming visible drops the matrix
// cache so the next call to SetMatrixAndColorTransform rebuilds.
func (s *TextSurface) SetVisible(visible bool) {
	if visible && !s.node.Visible {
		s.Invalidate()
	}
	s.node.Visible = visible
}

// IsVisible reports whether the node is visible.
func (s *TextSurface) IsVisible() bool {
	return s.node.Visible
}

// Invalidate drops the matrix cache.
func (s *TextSurface) Invalidate() {
	s.hasLast = false
}

// SetRenderingIndex places the node among its siblings.
func (s *TextSurface) SetRenderingIndex(i int) {
	s.node.SetZIndex(i)
}

// SetString replaces the displayed text.
func (s *TextSurface) SetString(text string) {
	s.node.TextBlock.SetContent(text)
}

// String returns the displayed text.
func (s *TextSurface) String() string {
	return s.node.TextBlock.Content
}

// Node returns the underlying willow node.
func (s *TextSurface) Node() *willow.Node {
	return s.node
}

// FontHeight returns the converted font height.
func (s *TextSurface) FontHeight() float64 {
	return s.fontHeight
}

// ComposedTransform returns the transform currently handed to the node.
func (s *TextSurface) ComposedTransform() willow.Mat4 {
	return s.transform.m
}

// Rebuilds returns how many times the composed transform was rebuilt.
func (s *TextSurface) Rebuilds() int {
	return s.rebuilds
}

// destroy detaches and disposes the node.
func (s *TextSurface) destroy() {
	s.node.Dispose()
}
