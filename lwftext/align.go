package lwftext

import (
	"github.com/phanxgames/willow-lwf"
	"github.com/phanxgames/willow-lwf/lwf"
)

// The system font path measures in points while outline fonts are authored
// in pixels. Points are converted at 96 DPI.
const (
	screenDPI     = 96
	pointsPerInch = 72
)

// HorizontalAlign maps the horizontal bits of a TextProperty.Align value.
// Unrecognized patterns align left.
func HorizontalAlign(align int) willow.TextAlign {
	switch align & lwf.AlignMask {
	case lwf.AlignRight:
		return willow.TextAlignRight
	case lwf.AlignCenter:
		return willow.TextAlignCenter
	default:
		return willow.TextAlignLeft
	}
}

// VerticalAlign maps the vertical bits of a TextProperty.Align value.
// Unrecognized patterns align to the top.
func VerticalAlign(align int) willow.TextVAlign {
	switch align & lwf.AlignVerticalMask {
	case lwf.AlignVerticalBottom:
		return willow.TextVAlignBottom
	case lwf.AlignVerticalMiddle:
		return willow.TextVAlignCenter
	default:
		return willow.TextVAlignTop
	}
}

// FontHeight converts a TextProperty.FontHeight into the unit of the font
// path in use.
func FontHeight(fontHeight float64, useTTF bool) float64 {
	if useTTF {
		return fontHeight
	}
	return fontHeight * screenDPI / pointsPerInch
}
