package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Manifest {
	m, _ := Build(
		[]string{"items/zombie_head.png", "items/apple.png", "/abs/diamond.sword.webp"},
		[]image.Rectangle{image.Rect(0, 0, 20, 20), image.Rect(0, 20, 10, 30), image.Rect(10, 20, 15, 25)},
		"",
	)
	return m
}

func TestKey(t *testing.T) {
	assert.Equal(t, "apple", Key("assets/items/apple.png", ""))
	assert.Equal(t, "diamond.sword", Key("diamond.sword.webp", ""))
	assert.Equal(t, "minecraft:item/apple", Key("apple.png", "minecraft:item/"))
}

func TestBuild(t *testing.T) {
	m := sample()
	assert.Equal(t, []string{"zombie_head", "apple", "diamond.sword"}, m.Keys())

	p, ok := m.Get("apple")
	require.True(t, ok)
	assert.Equal(t, Position{X: 0, Y: 20, W: 10, H: 10}, p)
	assert.Equal(t, image.Rect(0, 20, 10, 30), p.Rect())

	_, err := Build([]string{"a.png"}, nil, "")
	assert.Error(t, err)
}

func TestSetReplacesInPlace(t *testing.T) {
	m := New()
	m.Set("a", Position{W: 1})
	m.Set("b", Position{W: 2})
	m.Set("a", Position{W: 3})

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	p, _ := m.Get("a")
	assert.Equal(t, 3, p.W)
}

func TestEncode(t *testing.T) {
	m := sample()

	var minified bytes.Buffer
	require.NoError(t, m.Encode(&minified, false))
	assert.Equal(t, `{"zombie_head":[0,0,20,20],"apple":[0,20,10,10],"diamond.sword":[10,20,5,5]}`+"\n", minified.String())

	var pretty bytes.Buffer
	require.NoError(t, m.Encode(&pretty, true))
	assert.True(t, strings.HasPrefix(pretty.String(), "{\n  \"zombie_head\": [\n    0,\n"), pretty.String())
}

func TestRoundTrip(t *testing.T) {
	m := sample()
	for _, pretty := range []bool{true, false} {
		t.Run(fmt.Sprintf("pretty=%v", pretty), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, m.Encode(&buf, pretty))
			doc := buf.Bytes()

			got, err := Read(bytes.NewReader(doc))
			require.NoError(t, err)
			assert.Equal(t, m.Keys(), got.Keys())
			assert.Equal(t, m.Map(), got.Map())

			// Plain decoding agrees too.
			var plain map[string][4]int
			require.NoError(t, json.Unmarshal(doc, &plain))
			assert.Equal(t, [4]int{10, 20, 5, 5}, plain["diamond.sword"])
		})
	}
}

func TestReadRejects(t *testing.T) {
	for _, doc := range []string{`[]`, `{"a": [1,2,3]}`, `{"a": "x"}`, `{"a": [1,2,3,4]`} {
		_, err := Read(strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}

func TestMinifiedPath(t *testing.T) {
	assert.Equal(t, "out/items/atlas.min.json", MinifiedPath("out/items/atlas.json"))
	assert.Equal(t, "atlas.txt.min.json", MinifiedPath("atlas.txt"))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.json")
	require.NoError(t, sample().Write(path))

	pretty, err := os.ReadFile(path)
	require.NoError(t, err)
	minified, err := os.ReadFile(filepath.Join(dir, "atlas.min.json"))
	require.NoError(t, err)
	assert.Greater(t, len(pretty), len(minified))

	var a, b map[string][]int
	require.NoError(t, json.Unmarshal(pretty, &a))
	require.NoError(t, json.Unmarshal(minified, &b))
	assert.Equal(t, a, b)
}
