package lwftext

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/phanxgames/willow-lwf/lwf"
)

// TextRenderer connects one LWF text object to a TextSurface. A renderer
// whose surface could not be created is inert: every method is a no-op.
type TextRenderer struct {
	lwf      *lwf.LWF
	objectID int
	factory  *Factory
	surface  *TextSurface
}

var _ lwf.TextRenderer = (*TextRenderer)(nil)

// NewTextRenderer resolves Texts[objectID] of l.Data, creates its surface and
// attaches it to the factory's stage. Failures are logged and leave the
// renderer inert.
func NewTextRenderer(l *lwf.LWF, objectID int, useTTF bool, fontName string, f *Factory) *TextRenderer {
	r := &TextRenderer{lwf: l, objectID: objectID, factory: f}
	log := l.Log().WithFields(logrus.Fields{
		"object": objectID,
		"font":   fontName,
		"ttf":    useTTF,
	})

	if f.Node() == nil {
		log.Warn("factory destructed")
		return r
	}
	rt, err := l.Data.ResolveText(objectID)
	if err != nil {
		log.WithError(err).Warn("text descriptor not resolved")
		return r
	}

	s, err := NewTextSurface(SurfaceOptions{
		Name:        surfaceName(rt, objectID),
		Content:     rt.String,
		UseTTF:      useTTF,
		FontName:    fontName,
		Fonts:       f.cfg.Fonts,
		Glyphs:      f.cfg.Glyphs,
		FontHeight:  rt.Property.FontHeight,
		Width:       rt.Text.Width,
		Height:      rt.Text.Height,
		Align:       HorizontalAlign(rt.Property.Align),
		VAlign:      VerticalAlign(rt.Property.Align),
		Base:        rt.Color,
		Stroke:      rt.Stroke,
		StrokeWidth: rt.Property.StrokeWidth,
	})
	if err != nil {
		log.WithError(err).Warn("text surface not created")
		return r
	}

	f.attach(s)
	r.surface = s
	log.WithField("name", rt.Name).Debug("text renderer constructed")
	return r
}

func surfaceName(rt lwf.ResolvedText, objectID int) string {
	if rt.Name != "" {
		return rt.Name
	}
	return fmt.Sprintf("text-%d", objectID)
}

// Surface returns the renderer's surface, or nil when inert.
func (r *TextRenderer) Surface() *TextSurface {
	return r.surface
}

// IsInert reports whether the renderer has no surface.
func (r *TextRenderer) IsInert() bool {
	return r.surface == nil
}

// Destruct detaches and releases the surface.
func (r *TextRenderer) Destruct() {
	if r.surface == nil {
		return
	}
	r.factory.detach(r.surface)
	r.surface = nil
}

// Update does nothing; transforms are applied in Render only.
func (r *TextRenderer) Update(_ *lwf.Matrix, _ *lwf.ColorTransform) {}

// Render applies m and cx unless the factory culls the surface.
func (r *TextRenderer) Render(m *lwf.Matrix, cx *lwf.ColorTransform, renderingIndex, _ int, visible bool) {
	if r.surface == nil {
		return
	}
	if !r.factory.Render(r.lwf, r.surface, renderingIndex, visible) {
		return
	}
	r.surface.SetMatrixAndColorTransform(r.factory.Node(), m, cx)
}

// SetText replaces the surface's string.
func (r *TextRenderer) SetText(text string) {
	if r.surface == nil {
		return
	}
	r.surface.SetString(text)
}
