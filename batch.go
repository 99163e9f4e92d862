package willow

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// batchKey groups render commands that could share a draw call.
type batchKey struct {
	blend  BlendMode
	page   uint16
	direct *ebiten.Image
}

func commandBatchKey(cmd *RenderCommand) batchKey {
	return batchKey{
		blend:  cmd.BlendMode,
		page:   cmd.TextureRegion.Page,
		direct: cmd.directImage,
	}
}

// submitBatches iterates the commands in draw order and submits draw calls to the target
// image.
func (s *Scene) submitBatches(target *ebiten.Image) {
	if len(s.commands) == 0 {
		return
	}

	var op ebiten.DrawImageOptions

	for i := range s.commands {
		s.submitSprite(target, &s.commands[i], &op)
	}
}

// submitSprite draws a single sprite command using DrawImage.
func (s *Scene) submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	src := s.commandImage(cmd)
	if src == nil {
		return
	}

	op.GeoM = commandGeoM(cmd)

	// Apply premultiplied color scale
	op.ColorScale.Reset()
	a := cmd.Color.A
	op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)

	op.Blend = cmd.BlendMode.EbitenBlend()

	target.DrawImage(src, op)
}

// commandImage resolves the source image for a command: the direct image if
// set, WhitePixel for a zero-size region, otherwise a sub-image of a page.
func (s *Scene) commandImage(cmd *RenderCommand) *ebiten.Image {
	if cmd.directImage != nil {
		return cmd.directImage
	}
	r := &cmd.TextureRegion
	if r.Width == 0 || r.Height == 0 {
		return WhitePixel
	}
	if int(r.Page) >= len(s.pages) || s.pages[r.Page] == nil {
		return nil
	}
	subRect := image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
	return s.pages[r.Page].SubImage(subRect).(*ebiten.Image)
}

// commandGeoM converts a command's affine transform to an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(cmd.Transform[0]))
	m.SetElement(1, 0, float64(cmd.Transform[1]))
	m.SetElement(0, 1, float64(cmd.Transform[2]))
	m.SetElement(1, 1, float64(cmd.Transform[3]))
	m.SetElement(0, 2, float64(cmd.Transform[4]))
	m.SetElement(1, 2, float64(cmd.Transform[5]))
	return m
}
