package willow

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is one DrawImage call. Commands are emitted in draw order:
// depth-first, siblings ordered by ZIndex with ties kept in insertion order.
type RenderCommand struct {
	Transform     [6]float32
	TextureRegion TextureRegion
	Color         color32
	BlendMode     BlendMode

	// directImage, when non-nil, is drawn instead of a page region.
	// Custom images and rendered text use it.
	directImage *ebiten.Image
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// nodeColor is the node's tint with its world alpha folded into A.
func nodeColor(n *Node) color32 {
	return color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)}
}

// traverse refreshes world transforms of visible nodes and appends their
// render commands. Invisible subtrees are skipped entirely.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = childWorldAlpha(n, parentAlpha)
		n.transformDirty = false
	}

	if n.Renderable {
		s.emit(n)
	}

	for _, child := range drawOrder(n) {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// emit appends the command for a single node, if it draws anything.
func (s *Scene) emit(n *Node) {
	switch n.Type {
	case NodeTypeSprite:
		cmd := RenderCommand{
			Transform: affine32(n.worldTransform),
			Color:     nodeColor(n),
			BlendMode: n.BlendMode,
		}
		if n.customImage != nil {
			cmd.directImage = n.customImage
		} else {
			cmd.TextureRegion = n.TextureRegion
		}
		s.commands = append(s.commands, cmd)
	case NodeTypeText:
		if n.TextBlock != nil && n.TextBlock.Font != nil {
			s.commands = emitTTFTextCommand(n.TextBlock, n, s.commands)
		}
	}
}

// drawOrder returns n's children sorted by ZIndex. The sorted slice is
// cached on the node until SetZIndex or a tree change invalidates it.
func drawOrder(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		n.sortedChildren = append(n.sortedChildren[:0], n.children...)
		slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
			return cmp.Compare(a.ZIndex, b.ZIndex)
		})
		n.childrenSorted = true
	}
	if n.sortedChildren != nil {
		return n.sortedChildren
	}
	return n.children
}
