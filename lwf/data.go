package lwf

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is wrapped by errors for descriptor indices that do not
// refer to an entry of the shared tables.
var ErrIndexOutOfRange = errors.New("lwf: index out of range")

// Data holds the tables of one loaded animation. It is read-only once
// playback starts and is shared by every renderer of that animation.
type Data struct {
	Name           string
	Strings        []string
	Colors         []Color
	TextProperties []TextProperty
	Texts          []Text
}

// ResolvedText is a text descriptor with every table reference looked up.
type ResolvedText struct {
	Text     Text
	Name     string
	String   string
	Color    Color
	Property TextProperty
	Stroke   *Color // nil without stroke
}

// ResolveText looks up every table entry referenced by Texts[objectID].
// Out-of-range indices yield an error wrapping ErrIndexOutOfRange.
func (d *Data) ResolveText(objectID int) (ResolvedText, error) {
	var r ResolvedText
	if objectID < 0 || objectID >= len(d.Texts) {
		return r, fmt.Errorf("lwf: text %d: %w", objectID, ErrIndexOutOfRange)
	}
	t := d.Texts[objectID]
	r.Text = t

	if t.StringID < 0 || t.StringID >= len(d.Strings) {
		return r, fmt.Errorf("lwf: text %d: string id %d: %w", objectID, t.StringID, ErrIndexOutOfRange)
	}
	r.String = d.Strings[t.StringID]

	if t.NameStringID >= len(d.Strings) {
		return r, fmt.Errorf("lwf: text %d: name string id %d: %w", objectID, t.NameStringID, ErrIndexOutOfRange)
	}
	if t.NameStringID >= 0 {
		r.Name = d.Strings[t.NameStringID]
	}

	if t.ColorID < 0 || t.ColorID >= len(d.Colors) {
		return r, fmt.Errorf("lwf: text %d: color id %d: %w", objectID, t.ColorID, ErrIndexOutOfRange)
	}
	r.Color = d.Colors[t.ColorID]

	if t.TextPropertyID < 0 || t.TextPropertyID >= len(d.TextProperties) {
		return r, fmt.Errorf("lwf: text %d: text property id %d: %w", objectID, t.TextPropertyID, ErrIndexOutOfRange)
	}
	r.Property = d.TextProperties[t.TextPropertyID]

	if id := r.Property.StrokeColorID; id >= 0 && r.Property.StrokeWidth > 0 {
		if id >= len(d.Colors) {
			return r, fmt.Errorf("lwf: text %d: stroke color id %d: %w", objectID, id, ErrIndexOutOfRange)
		}
		c := d.Colors[id]
		r.Stroke = &c
	}
	return r, nil
}
