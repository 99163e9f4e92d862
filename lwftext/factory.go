package lwftext

import (
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/willow-lwf"
	"github.com/phanxgames/willow-lwf/lwf"
)

// Factory creates text renderers for one LWF instance and owns the stage
// node their surfaces hang from.
//
// LWF coordinates grow downward while surfaces are composed in a Y-up space,
// so the stage flips Y. Move, scale or tint the stage to place the whole
// animation; its displayed color and opacity are composited into every
// surface.
type Factory struct {
	cfg   Config
	stage *willow.Node

	surfaces []*TextSurface
	touched  map[*TextSurface]bool
	rendered int
	culled   int
}

var _ lwf.RendererFactory = (*Factory)(nil)

const stageName = "lwf"

// NewFactory creates a factory whose stage is added to parent. parent may be
// nil; attach Node() later.
func NewFactory(parent *willow.Node, cfg Config) *Factory {
	stage := willow.NewContainer(stageName)
	stage.ScaleY = -1
	if parent != nil {
		parent.AddChild(stage)
	}
	return &Factory{
		cfg:     cfg,
		stage:   stage,
		touched: make(map[*TextSurface]bool),
	}
}

// Node returns the stage node.
func (f *Factory) Node() *willow.Node {
	return f.stage
}

// Surfaces returns the attached surfaces in construction order. The returned
// slice MUST NOT be mutated by the caller.
func (f *Factory) Surfaces() []*TextSurface {
	return f.surfaces
}

// ConstructText implements lwf.RendererFactory.
func (f *Factory) ConstructText(l *lwf.LWF, objectID int, _ *lwf.Text) lwf.TextRenderer {
	if f.stage != nil && f.stage.Name == stageName {
		f.stage.Name = stageName + "-" + l.ID.String()
	}
	return NewTextRenderer(l, objectID, f.cfg.UseTTF, f.cfg.FontName, f)
}

// BeginRender starts a render pass.
func (f *Factory) BeginRender(_ *lwf.LWF) {
	clear(f.touched)
	f.rendered = 0
	f.culled = 0
}

// Render decides whether a surface takes this frame's transform and tint.
// Invisible surfaces are hidden and declined. Visible ones are shown and
// ordered by renderingIndex among the stage's children.
func (f *Factory) Render(_ *lwf.LWF, s *TextSurface, renderingIndex int, visible bool) bool {
	f.touched[s] = true
	if !visible {
		s.SetVisible(false)
		f.culled++
		return false
	}
	s.SetVisible(true)
	s.SetRenderingIndex(renderingIndex)
	f.rendered++
	return true
}

// EndRender hides every surface the pass did not reach.
func (f *Factory) EndRender(l *lwf.LWF) {
	hidden := 0
	for _, s := range f.surfaces {
		if !f.touched[s] && s.IsVisible() {
			s.SetVisible(false)
			hidden++
		}
	}
	l.Log().WithFields(logrus.Fields{
		"rendered": f.rendered,
		"culled":   f.culled,
		"hidden":   hidden,
	}).Debug("render pass")
}

// Destruct removes the stage from the scene and disposes it.
func (f *Factory) Destruct() {
	if f.stage == nil {
		return
	}
	f.stage.Dispose()
	f.stage = nil
	f.surfaces = nil
	clear(f.touched)
}

func (f *Factory) attach(s *TextSurface) {
	f.stage.AddChild(s.Node())
	f.surfaces = append(f.surfaces, s)
}

func (f *Factory) detach(s *TextSurface) {
	for i, c := range f.surfaces {
		if c == s {
			copy(f.surfaces[i:], f.surfaces[i+1:])
			f.surfaces[len(f.surfaces)-1] = nil
			f.surfaces = f.surfaces[:len(f.surfaces)-1]
			break
		}
	}
	delete(f.touched, s)
	s.destroy()
}
