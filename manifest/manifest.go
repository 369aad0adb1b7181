// Package manifest maps sprite names to their rectangles in an atlas.
//
// The JSON form is an object of four-element arrays:
//
//	{"diamond_sword": [0, 0, 16, 16], "apple": [16, 0, 16, 16]}
//
// Keys keep the order sprites were added in.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Position is a sprite's placement on the atlas, in pixels.
type Position struct {
	X, Y, W, H int
}

// FromRect converts an image.Rectangle into a Position.
func FromRect(r image.Rectangle) Position {
	return Position{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Rect converts p back into an image.Rectangle.
func (p Position) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
}

// MarshalJSON encodes p as [x, y, w, h].
func (p Position) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d,%d,%d]", p.X, p.Y, p.W, p.H)), nil
}

// UnmarshalJSON decodes [x, y, w, h].
func (p *Position) UnmarshalJSON(b []byte) error {
	var a []int
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a) != 4 {
		return errors.Errorf("position has %d elements; want 4", len(a))
	}
	*p = Position{X: a[0], Y: a[1], W: a[2], H: a[3]}
	return nil
}

// Manifest is an ordered mapping from sprite key to Position.
type Manifest struct {
	keys []string
	pos  map[string]Position
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{pos: map[string]Position{}}
}

// Set adds or replaces key. A replaced key keeps its original place.
func (m *Manifest) Set(key string, p Position) {
	if m.pos == nil {
		m.pos = map[string]Position{}
	}
	if _, ok := m.pos[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.pos[key] = p
}

// Get returns the position for key.
func (m *Manifest) Get(key string) (Position, bool) {
	p, ok := m.pos[key]
	return p, ok
}

// Keys returns the keys in insertion order.
func (m *Manifest) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *Manifest) Len() int { return len(m.keys) }

// Map returns a copy of the mapping without ordering.
func (m *Manifest) Map() map[string]Position {
	out := make(map[string]Position, len(m.pos))
	for k, v := range m.pos {
		out[k] = v
	}
	return out
}

// Key derives a sprite key from a file path: the base name without its
// extension, prefixed with namespace.
func Key(path, namespace string) string {
	base := filepath.Base(path)
	return namespace + strings.TrimSuffix(base, filepath.Ext(base))
}

// Build pairs each path with the rectangle at the same index.
func Build(paths []string, rects []image.Rectangle, namespace string) (*Manifest, error) {
	if len(paths) != len(rects) {
		return nil, errors.Errorf("%d sprites but %d positions", len(paths), len(rects))
	}
	m := New()
	for i, p := range paths {
		m.Set(Key(p, namespace), FromRect(rects[i]))
	}
	return m, nil
}

// MarshalJSON encodes the manifest as a JSON object in key order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		pb, _ := m.pos[k].MarshalJSON()
		buf.Write(pb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
func (m *Manifest) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Errorf("manifest: got %v; want an object", tok)
	}
	*m = Manifest{pos: map[string]Position{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string) // object keys are always strings
		var p Position
		if err := dec.Decode(&p); err != nil {
			return errors.Wrapf(err, "manifest key %q", key)
		}
		m.Set(key, p)
	}
	_, err = dec.Token()
	return err
}

// Encode writes m to w: indented by two spaces when pretty, otherwise
// without any whitespace. A newline always ends the document.
func (m *Manifest) Encode(w io.Writer, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(m, "", "  ")
	} else {
		b, err = json.Marshal(m)
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// Read decodes a manifest from r.
func Read(r io.Reader) (*Manifest, error) {
	m := New()
	if err := json.NewDecoder(r).Decode(m); err != nil {
		return nil, errors.Wrap(err, "decoding manifest")
	}
	return m, nil
}

// MinifiedPath returns the path of the minified twin of a manifest:
// atlas.json becomes atlas.min.json.
func MinifiedPath(path string) string {
	return strings.TrimSuffix(path, ".json") + ".min.json"
}

// Write stores the pretty manifest at path and the minified one at
// MinifiedPath(path).
func (m *Manifest) Write(path string) error {
	if err := m.writeFile(path, true); err != nil {
		return err
	}
	return m.writeFile(MinifiedPath(path), false)
}

func (m *Manifest) writeFile(path string, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating manifest")
	}
	if err := m.Encode(f, pretty); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
