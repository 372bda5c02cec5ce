// Package story loads the narrative content: per-scene tile maps,
// placements, labels and dialog scripts, plus the title strings, the choice
// prompt and the closing letter.
package story

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/ui/dialog"
)

//go:embed story.yaml
var embedded []byte

var (
	// ErrInvalidGrid is returned when a scene map is empty or ragged.
	ErrInvalidGrid = errors.New("invalid tile grid")
	// ErrMissingScene is returned when a scene has no story entry.
	ErrMissingScene = errors.New("scene not in story")
)

// Position is a world-pixel location.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Point converts p to a geom.Point.
func (p Position) Point() geom.Point { return geom.Pt(p.X, p.Y) }

// Sign is a label drawn in world space.
type Sign struct {
	Text string  `yaml:"text"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Scene is the content for one story scene.
type Scene struct {
	Label      string                    `yaml:"label"`
	Background string                    `yaml:"background"`
	Map        [][]int                   `yaml:"map"`
	Player     *Position                 `yaml:"player"`
	Partner    *Position                 `yaml:"partner"`
	Sign       *Sign                     `yaml:"sign"`
	Dialogs    map[string][]dialog.Entry `yaml:"dialogs"`
}

// Dialog returns the named dialog run, or nil.
func (s *Scene) Dialog(key string) []dialog.Entry {
	if s == nil {
		return nil
	}
	return s.Dialogs[key]
}

// BackgroundColor parses the background hex string, defaulting to black.
func (s *Scene) BackgroundColor() color.RGBA {
	if s == nil || s.Background == "" {
		return color.RGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(s.Background, 16, 32)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Title holds the boot screen strings.
type Title struct {
	Heading    string `yaml:"heading"`
	Subtitle   string `yaml:"subtitle"`
	Dedication string `yaml:"dedication"`
	Prompt     string `yaml:"prompt"`
}

// Choice holds the choice overlay strings.
type Choice struct {
	Prompt string `yaml:"prompt"`
	Insist string `yaml:"insist"`
	Accept string `yaml:"accept"`
	Dodge  string `yaml:"dodge"`
}

// Letter is the closing love letter.
type Letter struct {
	Title      string   `yaml:"title"`
	Greeting   string   `yaml:"greeting"`
	Paragraphs []string `yaml:"paragraphs"`
	Highlight  string   `yaml:"highlight"`
	Closing    string   `yaml:"closing"`
	Signature  string   `yaml:"signature"`
	Footer     string   `yaml:"footer"`
}

// Story is the whole narrative document.
type Story struct {
	Title  Title             `yaml:"title"`
	Scenes map[string]*Scene `yaml:"scenes"`
	Choice Choice            `yaml:"choice"`
	Letter Letter            `yaml:"letter"`
}

// Default parses the embedded story.
func Default() (*Story, error) {
	return Parse(embedded)
}

// Load reads a story document from path.
func Load(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story file %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("story file %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a story document.
func Parse(data []byte) (*Story, error) {
	var s Story
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse story: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid story: %w", err)
	}
	return &s, nil
}

// Validate checks every scene grid and dialog entry.
func (s *Story) Validate() error {
	for name, sc := range s.Scenes {
		if sc == nil {
			return fmt.Errorf("scene %s: empty entry", name)
		}
		if sc.Map != nil {
			if err := ValidateGrid(sc.Map); err != nil {
				return fmt.Errorf("scene %s: %w", name, err)
			}
		}
		for key, run := range sc.Dialogs {
			for i, e := range run {
				if e.Speaker == "" {
					return fmt.Errorf("scene %s dialog %s line %d: missing speaker", name, key, i)
				}
			}
		}
		if sc.Background != "" {
			if _, err := strconv.ParseUint(sc.Background, 16, 32); err != nil {
				return fmt.Errorf("scene %s: bad background %q", name, sc.Background)
			}
		}
	}
	return nil
}

// ValidateGrid checks that grid is non-empty and rectangular.
func ValidateGrid(grid [][]int) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidGrid)
	}
	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidGrid, y, len(row), width)
		}
	}
	return nil
}

// Scene returns the entry for name.
func (s *Story) Scene(name string) (*Scene, error) {
	sc, ok := s.Scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingScene, name)
	}
	return sc, nil
}
