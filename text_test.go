package willow

import (
	"errors"
	"testing"
	"testing/fstest"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/goregular"
)

// monoFont is a fixed-advance font: every rune is 10px wide, lines are 12px.
type monoFont struct{}

func (monoFont) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * 10, 12
}

func (monoFont) LineHeight() float64 { return 12 }

func loadTestFont(t *testing.T, size float64) *TTFFont {
	t.Helper()
	f, err := LoadTTFFont(goregular.TTF, size)
	if err != nil {
		t.Fatalf("LoadTTFFont: %v", err)
	}
	return f
}

// --- Font loading ---

func TestLoadTTFFont_InvalidData(t *testing.T) {
	_, err := LoadTTFFont([]byte("not a font"), 12)
	if err == nil {
		t.Error("expected error for invalid TTF data")
	}
}

func TestLoadTTFFont_Metrics(t *testing.T) {
	f := loadTestFont(t, 16)
	if f.Size() != 16 {
		t.Errorf("Size = %v, want 16", f.Size())
	}
	if f.LineHeight() <= 0 {
		t.Errorf("LineHeight = %v, want > 0", f.LineHeight())
	}
	if f.Face() == nil {
		t.Error("Face should not be nil")
	}
	w, _ := f.MeasureString("hello")
	if w <= 0 {
		t.Errorf("MeasureString width = %v, want > 0", w)
	}
}

func TestLoadTTFConfig_FromFS(t *testing.T) {
	fsys := fstest.MapFS{"fonts/regular.ttf": {Data: goregular.TTF}}
	f, err := LoadTTFConfig(fsys, TTFConfig{FontFile: "fonts/regular.ttf", Size: 20, Glyphs: GlyphsASCII})
	if err != nil {
		t.Fatalf("LoadTTFConfig: %v", err)
	}
	if f.Size() != 20 {
		t.Errorf("Size = %v, want 20", f.Size())
	}
}

func TestLoadTTFConfig_MissingFile(t *testing.T) {
	fsys := fstest.MapFS{}
	_, err := LoadTTFConfig(fsys, TTFConfig{FontFile: "missing.ttf", Size: 12})
	if !errors.Is(err, ErrFontNotFound) {
		t.Errorf("err = %v, want ErrFontNotFound", err)
	}
}

func TestLoadTTFConfig_NilFS(t *testing.T) {
	_, err := LoadTTFConfig(nil, TTFConfig{FontFile: "a.ttf", Size: 12})
	if !errors.Is(err, ErrFontNotFound) {
		t.Errorf("err = %v, want ErrFontNotFound", err)
	}
}

func TestLoadTTFConfig_InvalidSize(t *testing.T) {
	fsys := fstest.MapFS{"a.ttf": {Data: goregular.TTF}}
	_, err := LoadTTFConfig(fsys, TTFConfig{FontFile: "a.ttf", Size: 0})
	if err == nil {
		t.Fatal("expected error for zero size")
	}
	if errors.Is(err, ErrFontNotFound) {
		t.Error("size error should not wrap ErrFontNotFound")
	}
}

func TestNewSystemFont_UnknownNameFallsBack(t *testing.T) {
	f, err := NewSystemFont("no-such-family", 14)
	if err != nil {
		t.Fatalf("NewSystemFont: %v", err)
	}
	if f.Size() != 14 {
		t.Errorf("Size = %v, want 14", f.Size())
	}
}

func TestNewSystemFont_InvalidSize(t *testing.T) {
	if _, err := NewSystemFont(DefaultSystemFont, -1); err == nil {
		t.Error("expected error for negative size")
	}
}

func TestRegisterSystemFont(t *testing.T) {
	if err := RegisterSystemFont("broken", []byte{1, 2, 3}); err == nil {
		t.Error("expected error for invalid data")
	}
	if err := RegisterSystemFont("go-regular", goregular.TTF); err != nil {
		t.Fatalf("RegisterSystemFont: %v", err)
	}
	if _, err := NewSystemFont("go-regular", 10); err != nil {
		t.Errorf("NewSystemFont: %v", err)
	}
}

// --- Layout ---

func TestTextBlock_NoWrapWhenZeroWidth(t *testing.T) {
	n := NewText("t", "one two three", monoFont{})
	lines := n.TextBlock.Lines()
	if len(lines) != 1 || lines[0] != "one two three" {
		t.Errorf("lines = %q, want single line", lines)
	}
	w, h := n.TextBlock.MeasuredSize()
	assertNear(t, "w", w, 130)
	assertNear(t, "h", h, 12)
}

func TestTextBlock_WordWrap(t *testing.T) {
	n := NewText("t", "one two three", monoFont{})
	n.TextBlock.SetDimensions(75, 0)
	lines := n.TextBlock.Lines()
	want := []string{"one two", "three"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
	_, h := n.TextBlock.MeasuredSize()
	assertNear(t, "h", h, 24)
}

func TestTextBlock_LongWordOwnLine(t *testing.T) {
	n := NewText("t", "a extraordinary b", monoFont{})
	n.TextBlock.SetDimensions(30, 0)
	lines := n.TextBlock.Lines()
	want := []string{"a", "extraordinary", "b"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTextBlock_Paragraphs(t *testing.T) {
	n := NewText("t", "first\nsecond", monoFont{})
	if got := len(n.TextBlock.Lines()); got != 2 {
		t.Errorf("lines = %d, want 2", got)
	}
}

func TestTextBlock_LayoutCaching(t *testing.T) {
	n := NewText("t", "hello", monoFont{})
	tb := n.TextBlock
	tb.Lines()
	if tb.layoutDirty {
		t.Fatal("layout should be clean after Lines")
	}

	tb.SetContent("hello")
	if tb.layoutDirty {
		t.Error("SetContent with same text should not dirty layout")
	}
	tb.SetContent("world")
	if !tb.layoutDirty {
		t.Error("SetContent should dirty layout")
	}
	tb.Lines()
	tb.LineHeight = 30
	tb.Invalidate()
	_, h := tb.MeasuredSize()
	assertNear(t, "h with LineHeight override", h, 30)
}

func TestTextBlock_EmptyContentHasNoHeight(t *testing.T) {
	n := NewText("t", "", monoFont{})
	_, h := n.TextBlock.MeasuredSize()
	assertNear(t, "h", h, 0)
}

// --- Scene graph ---

func TestTextNode_EmitsOneCommand(t *testing.T) {
	s := NewScene()
	n := NewText("t", "hello", loadTestFont(t, 16))
	n.TextBlock.SetDimensions(100, 20)
	s.Root().AddChild(n)

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if s.commands[0].directImage == nil {
		t.Error("text command should carry its rendered image")
	}
}

func TestTextNode_EmptyContentNoCommand(t *testing.T) {
	s := NewScene()
	n := NewText("t", "", loadTestFont(t, 16))
	s.Root().AddChild(n)

	traverseScene(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestTextNode_NonTTFFontNoCommand(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewText("t", "hello", monoFont{}))

	traverseScene(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestTextNode_OutlinePadsTransform(t *testing.T) {
	s := NewScene()
	n := NewText("t", "hello", loadTestFont(t, 16))
	n.TextBlock.SetDimensions(100, 20)
	n.TextBlock.Outline = &Outline{Color: Color{A: 1}, Thickness: 2}
	n.X = 50
	n.Y = 60
	s.Root().AddChild(n)

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	tr := s.commands[0].Transform
	assertNear(t, "tx", float64(tr[4]), 48)
	assertNear(t, "ty", float64(tr[5]), 58)
}

func TestComposeGlyphTransform_Identity(t *testing.T) {
	got := composeGlyphTransform(identityTransform, 5, 7)
	assertMatrix(t, "glyph", got, [6]float64{1, 0, 0, 1, 5, 7})
}

func TestComposeGlyphTransform_Scaled(t *testing.T) {
	world := [6]float64{2, 0, 0, 3, 100, 200}
	got := composeGlyphTransform(world, 5, 7)
	assertMatrix(t, "glyph", got, [6]float64{2, 0, 0, 3, 110, 221})
}

// --- Benchmarks ---

func BenchmarkTextBlock_Layout(b *testing.B) {
	n := NewText("t", "the quick brown fox jumps over the lazy dog", monoFont{})
	n.TextBlock.SetDimensions(120, 0)
	b.ReportAllocs()
	for b.Loop() {
		n.TextBlock.Invalidate()
		n.TextBlock.Lines()
	}
}
