// Package willow is a small retained-mode 2D scene graph for [Ebitengine],
// trimmed down to what an animation runtime needs to drive text on screen.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and, unless
// [Node.CascadeOpacity] is off, its alpha.
//
//	scene := willow.NewScene()
//	label := willow.NewText("title", "Hello", font)
//	label.X, label.Y = 40, 30
//	scene.Root().AddChild(label)
//	willow.Run(scene, willow.RunConfig{Title: "demo", Width: 640, Height: 480})
//
// # Text
//
// Text nodes render a [TextBlock] with a [TTFFont]. Fonts come from raw
// TTF data ([LoadTTFFont]), from a file system ([LoadTTFConfig]), or from the
// system font registry ([NewSystemFont], backed by Go Regular by default).
// A TextBlock with a Width and Height behaves as a box: lines wrap at the
// width, [TextAlign] and [TextVAlign] position them inside.
//
// # Externally driven transforms
//
// A text node with a [TransformSource] takes its local transform verbatim
// from the source as a [Mat4] instead of decomposing X/Y/Scale/Rotation.
// The willow-lwf/lwftext package uses this to push LWF animation matrices,
// shear included, straight into the scene graph.
//
// [Ebitengine]: https://ebitengine.org
package willow
