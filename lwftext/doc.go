// Package lwftext renders the text objects of an LWF animation with willow
// text nodes.
//
// A Factory implements lwf.RendererFactory. It owns a stage node, flipped so
// that surfaces can be composed in a Y-up space, and creates one TextRenderer
// per text object:
//
//	factory := lwftext.NewFactory(scene.Root(), lwftext.Config{FontName: willow.DefaultSystemFont})
//	l := lwf.New(data, factory)
//	l.AddText(0)
//	scene.SetUpdateFunc(func() error { l.Render(); return nil })
//
// Each renderer owns a TextSurface. On every render pass the surface takes
// the object's matrix, rebuilding its composed transform only when the
// matrix changed, and its tint, which is always recomposited against the
// stage's displayed color and opacity.
//
// Alignment bits and font heights are converted once, at construction. In
// system-font mode heights are authored in points and scaled by 96/72; in
// TTF mode they are used as is.
//
// A renderer whose descriptor cannot be resolved or whose font cannot be
// loaded logs a warning and stays inert. The rest of the animation keeps
// playing.
package lwftext
