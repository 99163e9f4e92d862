package lwf

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TextRenderer draws one text instance of the display list. Renderers are
// created by a RendererFactory and called only from the frame loop.
type TextRenderer interface {
	// Destruct releases the renderer's host resources. Calling it again is a no-op.
	Destruct()
	// Update is called on non-rendering passes.
	Update(m *Matrix, cx *ColorTransform)
	// Render pushes the frame's transform and tint for the instance at
	// renderingIndex of renderingCount display list entries.
	Render(m *Matrix, cx *ColorTransform, renderingIndex, renderingCount int, visible bool)
	// SetText replaces the displayed string.
	SetText(text string)
}

// RendererFactory creates renderers for a host and brackets each render pass.
type RendererFactory interface {
	ConstructText(l *LWF, objectID int, t *Text) TextRenderer
	BeginRender(l *LWF)
	EndRender(l *LWF)
	Destruct()
}

// TextObject is a text instance on the display list. Matrix, ColorTransform
// and Visible hold the values for the current frame.
type TextObject struct {
	ObjectID       int
	Name           string
	Matrix         Matrix
	ColorTransform ColorTransform
	Visible        bool

	renderer TextRenderer
}

// Renderer returns the renderer created for this object.
func (o *TextObject) Renderer() TextRenderer {
	return o.renderer
}

// LWF is one playing instance of an animation.
type LWF struct {
	ID   uuid.UUID
	Data *Data

	factory     RendererFactory
	objects     []*TextObject
	renderCount int
	destroyed   bool
}

// New creates an instance playing data, rendering through factory. AddText
// fails while either is nil.
func New(data *Data, factory RendererFactory) *LWF {
	return &LWF{
		ID:      uuid.New(),
		Data:    data,
		factory: factory,
	}
}

// Factory returns the instance's renderer factory.
func (l *LWF) Factory() RendererFactory {
	return l.factory
}

// RenderCount returns the number of completed Render passes.
func (l *LWF) RenderCount() int {
	return l.renderCount
}

// Objects returns the display list in rendering order. The returned slice
// MUST NOT be mutated by the caller.
func (l *LWF) Objects() []*TextObject {
	return l.objects
}

// Log returns the package logger with this instance's fields attached.
func (l *LWF) Log() *logrus.Entry {
	fields := logrus.Fields{"lwf": l.ID.String()}
	if l.Data != nil {
		fields["data"] = l.Data.Name
	}
	return Logger().WithFields(fields)
}

// AddText appends Texts[objectID] to the display list, visible, with identity
// transform and tint. The descriptor is validated here, once.
func (l *LWF) AddText(objectID int) (*TextObject, error) {
	if l.destroyed {
		return nil, errors.New("lwf: instance destroyed")
	}
	if l.factory == nil {
		return nil, errors.New("lwf: no renderer factory")
	}
	if l.Data == nil {
		return nil, errors.New("lwf: no data")
	}
	rt, err := l.Data.ResolveText(objectID)
	if err != nil {
		return nil, fmt.Errorf("lwf: add text: %w", err)
	}
	o := &TextObject{
		ObjectID:       objectID,
		Name:           rt.Name,
		Matrix:         IdentityMatrix(),
		ColorTransform: IdentityColorTransform(),
		Visible:        true,
	}
	t := rt.Text
	o.renderer = l.factory.ConstructText(l, objectID, &t)
	l.objects = append(l.objects, o)
	return o, nil
}

// RemoveText takes o off the display list and destructs its renderer.
func (l *LWF) RemoveText(o *TextObject) {
	for i, c := range l.objects {
		if c == o {
			copy(l.objects[i:], l.objects[i+1:])
			l.objects[len(l.objects)-1] = nil
			l.objects = l.objects[:len(l.objects)-1]
			o.renderer.Destruct()
			return
		}
	}
}

// SetText replaces the string of every text object named name and reports
// whether any matched. Unnamed objects never match.
func (l *LWF) SetText(name, text string) bool {
	if name == "" {
		return false
	}
	found := false
	for _, o := range l.objects {
		if o.Name == name {
			o.renderer.SetText(text)
			found = true
		}
	}
	return found
}

// Update runs a non-rendering pass over the display list.
func (l *LWF) Update() {
	if l.destroyed {
		return
	}
	for _, o := range l.objects {
		o.renderer.Update(&o.Matrix, &o.ColorTransform)
	}
}

// Render runs a render pass: every display list entry is rendered in order,
// bracketed by the factory's BeginRender and EndRender.
func (l *LWF) Render() {
	if l.destroyed {
		return
	}
	l.factory.BeginRender(l)
	count := len(l.objects)
	for i, o := range l.objects {
		o.renderer.Render(&o.Matrix, &o.ColorTransform, i, count, o.Visible)
	}
	l.factory.EndRender(l)
	l.renderCount++
}

// Destroy destructs every renderer and the factory. Later calls are no-ops.
func (l *LWF) Destroy() {
	if l.destroyed {
		return
	}
	l.destroyed = true
	for _, o := range l.objects {
		o.renderer.Destruct()
	}
	l.objects = nil
	if l.factory != nil {
		l.factory.Destruct()
	}
	l.Log().Debug("destroyed")
}
