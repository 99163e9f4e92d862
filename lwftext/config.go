package lwftext

import (
	"io/fs"

	"github.com/phanxgames/willow-lwf"
)

// Config selects the font path used by every renderer a Factory constructs.
type Config struct {
	// UseTTF loads FontName from Fonts as an outline font. When false
	// FontName is a system font name; see willow.NewSystemFont.
	UseTTF   bool
	FontName string
	Fonts    fs.FS

	// Glyphs controls glyph preloading for outline fonts.
	Glyphs willow.GlyphCollection
}
