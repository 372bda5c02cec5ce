package story

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lookingback/internal/geom"
)

func TestDefaultStory(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	for _, name := range []string{"HomeScene", "TownScene", "CafeScene", "RideScene", "FinalScene"} {
		_, err := s.Scene(name)
		assert.NoError(t, err, name)
	}

	home, _ := s.Scene("HomeScene")
	require.Len(t, home.Map, 12)
	assert.Len(t, home.Map[0], 15)
	assert.Equal(t, geom.Pt(240, 208), home.Player.Point())
	assert.Len(t, home.Dialog("intro"), 4)
	assert.Equal(t, "Luthfi", home.Dialog("intro")[0].Speaker)

	town, _ := s.Scene("TownScene")
	assert.Len(t, town.Dialog("meet"), 8)
	assert.Equal(t, geom.Pt(192, 112), town.Partner.Point())

	cafe, _ := s.Scene("CafeScene")
	assert.Len(t, cafe.Dialog("date"), 14)
	require.NotNil(t, cafe.Sign)
	assert.Equal(t, "KopiKitaku", cafe.Sign.Text)

	ride, _ := s.Scene("RideScene")
	assert.Len(t, ride.Dialog("ride"), 12)

	final, _ := s.Scene("FinalScene")
	assert.Len(t, final.Dialog("question"), 8)
	assert.Len(t, final.Dialog("answer"), 4)

	assert.Equal(t, "Our Love: Looking back", s.Title.Heading)
	assert.Equal(t, "Stay with me forever ♥", s.Choice.Accept)
	assert.Len(t, s.Letter.Paragraphs, 6)
	assert.NotContains(t, s.Letter.Paragraphs[0], "\n")
	assert.Equal(t, "Luthfi ♥", s.Letter.Signature)
}

func TestBackgroundColor(t *testing.T) {
	sc := &Scene{Background: "1a2a10"}
	c := sc.BackgroundColor()
	assert.Equal(t, uint8(0x1a), c.R)
	assert.Equal(t, uint8(0x2a), c.G)
	assert.Equal(t, uint8(0x10), c.B)

	var none *Scene
	assert.Equal(t, uint8(0xff), none.BackgroundColor().A)
	assert.Nil(t, none.Dialog("x"))
}

func TestValidateGrid(t *testing.T) {
	assert.NoError(t, ValidateGrid([][]int{{1, 2}, {3, 4}}))
	assert.ErrorIs(t, ValidateGrid(nil), ErrInvalidGrid)
	assert.ErrorIs(t, ValidateGrid([][]int{{}}), ErrInvalidGrid)
	assert.ErrorIs(t, ValidateGrid([][]int{{1, 2}, {3}}), ErrInvalidGrid)
}

func TestParseRejectsRaggedMap(t *testing.T) {
	doc := []byte(`
scenes:
  HomeScene:
    map:
      - [1, 1, 1]
      - [1, 0]
`)
	_, err := Parse(doc)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestParseRejectsMissingSpeaker(t *testing.T) {
	doc := []byte(`
scenes:
  HomeScene:
    dialogs:
      intro:
        - {text: "hello"}
`)
	_, err := Parse(doc)
	assert.Error(t, err)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("scenes: [unterminated"))
	assert.Error(t, err)
}

func TestMissingScene(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	_, err = s.Scene("Nowhere")
	assert.ErrorIs(t, err, ErrMissingScene)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, embedded, 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Scenes, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
