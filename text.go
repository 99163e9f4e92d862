package willow

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrFontNotFound is returned when a font file or system font name cannot be
// resolved.
var ErrFontNotFound = errors.New("willow: font not found")

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- Outline ---

// Outline defines a text stroke rendered behind the fill.
type Outline struct {
	Color     Color
	Thickness float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
//
// Width and Height describe the text box. When Width is non-zero lines are
// wrapped at word boundaries and aligned within it; when Height is non-zero
// VAlign positions the lines inside it. A zero box sizes to the content.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	VAlign     TextVAlign
	Width      float64
	Height     float64
	Color      Color
	Outline    *Outline
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Cached layout (unexported)
	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []string

	// TTF rendering cache (unexported)
	ttfImage *ebiten.Image
	ttfDirty bool // true when the cached image needs re-render
}

// SetContent replaces the text and invalidates the cached layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// SetFont replaces the font and invalidates the cached layout.
func (tb *TextBlock) SetFont(f Font) {
	tb.Font = f
	tb.layoutDirty = true
}

// SetDimensions sets the text box and invalidates the cached layout.
func (tb *TextBlock) SetDimensions(w, h float64) {
	tb.Width = w
	tb.Height = h
	tb.layoutDirty = true
}

// Invalidate forces a re-layout and re-render on the next draw. Call it
// after changing exported fields directly.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// Lines returns the wrapped lines from the most recent layout.
func (tb *TextBlock) Lines() []string {
	tb.layout()
	return tb.lines
}

// MeasuredSize returns the size of the laid out content, excluding the box.
func (tb *TextBlock) MeasuredSize() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// layout recomputes wrapped lines if dirty. Returns the cached lines.
func (tb *TextBlock) layout() []string {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.ttfDirty = true
	tb.lines = tb.lines[:0]
	tb.measuredW = 0
	tb.measuredH = 0

	if tb.Font == nil {
		return tb.lines
	}

	for _, para := range strings.Split(tb.Content, "\n") {
		tb.lines = wrapParagraph(tb.lines, para, tb.Font, tb.Width)
	}
	for _, line := range tb.lines {
		w, _ := tb.Font.MeasureString(line)
		if w > tb.measuredW {
			tb.measuredW = w
		}
	}
	if tb.Content != "" {
		tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
	}
	return tb.lines
}

// wrapParagraph appends the lines of a single paragraph to dst, breaking at
// spaces so no line exceeds maxW. A word wider than maxW gets its own line.
func wrapParagraph(dst []string, para string, f Font, maxW float64) []string {
	if maxW <= 0 {
		return append(dst, para)
	}
	words := strings.Split(para, " ")
	var cur string
	for i, word := range words {
		if i == 0 {
			cur = word
			continue
		}
		candidate := cur + " " + word
		if w, _ := f.MeasureString(candidate); w > maxW && cur != "" {
			dst = append(dst, cur)
			cur = word
			continue
		}
		cur = candidate
	}
	return append(dst, cur)
}

// release frees the cached TTF image.
func (tb *TextBlock) release() {
	if tb.ttfImage != nil {
		tb.ttfImage.Deallocate()
		tb.ttfImage = nil
	}
}

// --- TTFFont ---

// GlyphCollection selects which glyphs are rasterized up front when a TTF
// font is loaded through a TTFConfig. Other glyphs are rasterized lazily by
// Ebitengine the first time they are drawn.
type GlyphCollection uint8

const (
	GlyphsDynamic GlyphCollection = iota // rasterize on first use
	GlyphsASCII                          // preload printable ASCII
	GlyphsCustom                         // preload TTFConfig.CustomGlyphs
)

// printableASCII is the preload set for GlyphsASCII.
const printableASCII = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// TTFConfig describes an outline font loaded from a file system.
type TTFConfig struct {
	FontFile     string  // path within the fs.FS
	Size         float64 // face size in pixels
	Glyphs       GlyphCollection
	CustomGlyphs string // used when Glyphs is GlyphsCustom
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("willow: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

// LoadTTFConfig reads cfg.FontFile from fsys and loads it at cfg.Size,
// preloading glyphs according to cfg.Glyphs. A missing file yields an error
// wrapping ErrFontNotFound.
func LoadTTFConfig(fsys fs.FS, cfg TTFConfig) (*TTFFont, error) {
	if fsys == nil {
		return nil, fmt.Errorf("willow: font %q: no file system: %w", cfg.FontFile, ErrFontNotFound)
	}
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("willow: font %q: invalid size %v", cfg.FontFile, cfg.Size)
	}
	data, err := fs.ReadFile(fsys, cfg.FontFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("willow: font %q: %w", cfg.FontFile, ErrFontNotFound)
		}
		return nil, fmt.Errorf("willow: read font %q: %w", cfg.FontFile, err)
	}
	f, err := LoadTTFFont(data, cfg.Size)
	if err != nil {
		return nil, err
	}
	switch cfg.Glyphs {
	case GlyphsASCII:
		text.CacheGlyphs(printableASCII, f.face)
	case GlyphsCustom:
		if cfg.CustomGlyphs != "" {
			text.CacheGlyphs(cfg.CustomGlyphs, f.face)
		}
	}
	return f, nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	// Compute line height from metrics
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	w, h := text.Measure(s, f.face, f.lh)
	return w, h
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the face size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- System fonts ---

// DefaultSystemFont names the font used when a system font name is unknown.
// It is backed by Go Regular.
const DefaultSystemFont = "sans-serif"

var (
	systemFontData    = map[string][]byte{DefaultSystemFont: goregular.TTF}
	systemFontSources = map[string]*text.GoTextFaceSource{}
)

// RegisterSystemFont makes ttfData available to NewSystemFont under name.
// The data is parsed immediately so broken fonts are reported here.
func RegisterSystemFont(name string, ttfData []byte) error {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return fmt.Errorf("willow: system font %q: %w", name, err)
	}
	systemFontData[name] = ttfData
	systemFontSources[name] = source
	return nil
}

// NewSystemFont returns a face for the named system font. Unknown names fall
// back to DefaultSystemFont, mirroring how platform font lookups behave.
func NewSystemFont(name string, size float64) (*TTFFont, error) {
	if size <= 0 {
		return nil, fmt.Errorf("willow: system font %q: invalid size %v", name, size)
	}
	if _, ok := systemFontData[name]; !ok {
		name = DefaultSystemFont
	}
	source, ok := systemFontSources[name]
	if !ok {
		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(systemFontData[name]))
		if err != nil {
			return nil, fmt.Errorf("willow: system font %q: %w", name, err)
		}
		systemFontSources[name] = source
	}
	return newTTFFont(source, size), nil
}

// --- Text rendering helpers (used by render.go) ---

// composeGlyphTransform creates a world transform for an image placed at the
// given local offset relative to the text node's world transform.
// This is: worldTransform * Translate(localX, localY)
func composeGlyphTransform(world [6]float64, localX, localY float64) [6]float64 {
	return [6]float64{
		world[0], world[1], world[2], world[3],
		world[0]*localX + world[2]*localY + world[4],
		world[1]*localX + world[3]*localY + world[5],
	}
}

// outlineOffsets are the eight directions an outline is stamped in.
var outlineOffsets = [8][2]float64{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// emitTTFTextCommand renders TTF text to a cached image and emits a single
// command drawing it. The image is only re-rendered when the layout changes
// (ttfDirty). May allocate on first render (Ebitengine's internal glyph cache).
func emitTTFTextCommand(tb *TextBlock, n *Node, commands []RenderCommand) []RenderCommand {
	if tb.Content == "" {
		return commands
	}
	lines := tb.layout()
	boxW, boxH := tb.Width, tb.Height
	if boxW <= 0 {
		boxW = tb.measuredW
	}
	if boxH <= 0 {
		boxH = tb.measuredH
	}
	if len(lines) == 0 || boxW <= 0 || boxH <= 0 {
		return commands
	}

	f, ok := tb.Font.(*TTFFont)
	if !ok {
		return commands
	}

	var pad float64
	if tb.Outline != nil && tb.Outline.Thickness > 0 {
		pad = math.Ceil(tb.Outline.Thickness)
	}
	w := int(math.Ceil(boxW+2*pad)) + 1
	h := int(math.Ceil(boxH+2*pad)) + 1

	if tb.ttfDirty || tb.ttfImage == nil {
		tb.ttfDirty = false
		if tb.ttfImage != nil {
			oldB := tb.ttfImage.Bounds()
			if oldB.Dx() != w || oldB.Dy() != h {
				tb.ttfImage.Deallocate()
				tb.ttfImage = ebiten.NewImage(w, h)
			} else {
				tb.ttfImage.Clear()
			}
		} else {
			tb.ttfImage = ebiten.NewImage(w, h)
		}
		drawTextBlock(tb, f, lines, boxW, boxH, pad)
	}

	return append(commands, RenderCommand{
		Transform:   affine32(composeGlyphTransform(n.worldTransform, -pad, -pad)),
		Color:       nodeColor(n),
		BlendMode:   n.BlendMode,
		directImage: tb.ttfImage,
	})
}

// drawTextBlock draws the outline (if any) and fill of lines into tb.ttfImage,
// aligned inside a boxW x boxH box whose top-left sits at (pad, pad).
func drawTextBlock(tb *TextBlock, f *TTFFont, lines []string, boxW, boxH, pad float64) {
	content := strings.Join(lines, "\n")
	op := &text.DrawOptions{}
	op.LineSpacing = tb.lineHeight()

	x, y := pad, pad
	switch tb.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
		x += boxW / 2
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
		x += boxW
	default:
		op.PrimaryAlign = text.AlignStart
	}
	switch tb.VAlign {
	case TextVAlignCenter:
		op.SecondaryAlign = text.AlignCenter
		y += boxH / 2
	case TextVAlignBottom:
		op.SecondaryAlign = text.AlignEnd
		y += boxH
	default:
		op.SecondaryAlign = text.AlignStart
	}

	if tb.Outline != nil && tb.Outline.Thickness > 0 {
		t := tb.Outline.Thickness
		oc := tb.Outline.Color
		for _, off := range outlineOffsets {
			op.GeoM.Reset()
			op.GeoM.Translate(x+off[0]*t, y+off[1]*t)
			op.ColorScale.Reset()
			op.ColorScale.Scale(float32(oc.R*oc.A), float32(oc.G*oc.A), float32(oc.B*oc.A), float32(oc.A))
			text.Draw(tb.ttfImage, content, f.face, op)
		}
	}

	c := tb.Color
	op.GeoM.Reset()
	op.GeoM.Translate(x, y)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	text.Draw(tb.ttfImage, content, f.face, op)
}
