package evergreen

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"gopkg.in/yaml.v3"
)

// SceneConfig is everything needed to build a Scene. Zero-valued sections in
// a YAML file keep their defaults because files are decoded over
// DefaultSceneConfig.
type SceneConfig struct {
	// Seed makes every dataset reproducible.
	Seed uint64 `yaml:"seed"`
	// StartAssembled skips the intro assembly: cursors start at the tree.
	StartAssembled bool `yaml:"startAssembled"`
	// Offset translates every group before projection.
	Offset r3.Vector `yaml:"offset"`
	// Background is the clear color.
	Background Color `yaml:"background"`

	Foliage   GroupConfig   `yaml:"foliage"`
	Ornaments []GroupConfig `yaml:"ornaments"`
	Star      StarConfig    `yaml:"star"`
	Sparkles  SparkleConfig `yaml:"sparkles"`
	Camera    CameraConfig  `yaml:"camera"`

	// Debug enables per-frame stats on stderr.
	Debug bool `yaml:"debug"`
}

// DefaultSceneConfig returns the stock scene: 15000 foliage points, 150 gift
// boxes, 200 gold and 100 silver baubles, the star and 200 sparkles.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Seed:       1225,
		Offset:     r3.Vector{Y: -4},
		Background: Hex(0x000502),
		Foliage:    FoliageConfig(),
		Ornaments: []GroupConfig{
			OrnamentConfig("gifts", KindBox, 150, Hex(0x8b0000)),
			OrnamentConfig("gold", KindSphere, 200, Hex(0xFFD700)),
			OrnamentConfig("silver", KindSphere, 100, Hex(0xC0C0C0)),
		},
		Star:     DefaultStarConfig(),
		Sparkles: DefaultSparkleConfig(),
		Camera:   DefaultCameraConfig(),
	}
}

// Validate checks every section and returns the first failure. Every
// returned error wraps ErrInvalidConfig.
func (c SceneConfig) Validate() error {
	if c.Foliage.Kind != KindFoliage {
		return invalidf("foliage: kind %s must be foliage", c.Foliage.Kind)
	}
	if err := c.Foliage.Validate(); err != nil {
		return err
	}
	seen := map[string]bool{c.Foliage.Name: true}
	for _, o := range c.Ornaments {
		if o.Kind != KindBox && o.Kind != KindSphere {
			return invalidf("group %q: kind %s is not an ornament kind", o.Name, o.Kind)
		}
		if seen[o.Name] {
			return invalidf("group %q: duplicate name", o.Name)
		}
		seen[o.Name] = true
		if err := o.Validate(); err != nil {
			return err
		}
	}
	if err := c.Star.Validate(); err != nil {
		return err
	}
	if err := c.Sparkles.Validate(); err != nil {
		return err
	}
	return c.Camera.Validate()
}

// ParseSceneConfig decodes YAML over the defaults and validates the result.
func ParseSceneConfig(data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}

// LoadSceneConfig reads and parses a YAML scene file.
func LoadSceneConfig(path string) (SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("load scene config %s: %w", path, err)
	}
	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("load scene config %s: %w", path, err)
	}
	return cfg, nil
}

// MarshalSceneConfig encodes cfg as YAML, suitable as a starting point for a
// custom scene file.
func MarshalSceneConfig(cfg SceneConfig) ([]byte, error) {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal scene config: %w", err)
	}
	return data, nil
}

// UnmarshalYAML accepts "#rrggbb", "#rrggbbaa" or a {r, g, b, a} mapping
// with components in [0, 1].
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParseHexColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = parsed
		return nil
	}
	type plain Color
	p := plain{A: 1}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = Color(p)
	return nil
}

// MarshalYAML writes the color in hex form.
func (c Color) MarshalYAML() (any, error) {
	return c.HexString(), nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa". The leading '#' or "0x" is
// optional.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 6 {
		return Hex(uint32(v)), nil
	}
	c := Hex(uint32(v >> 8))
	c.A = float64(v&0xff) / 255
	return c, nil
}

// HexString formats c as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) HexString() string {
	b := func(v float64) int { return int(clamp01(v)*255 + 0.5) }
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
}

// UnmarshalYAML decodes a kind name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, ok := ParseKind(strings.ToLower(s))
	if !ok {
		return fmt.Errorf("line %d: unknown kind %q", node.Line, s)
	}
	*k = parsed
	return nil
}

// MarshalYAML writes the kind name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// RunConfig holds window parameters for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ExitWhenScriptDone stops the loop once an attached TestRunner has run
	// every step. Run then reports any failed expectations as an error.
	ExitWhenScriptDone bool
}

// DefaultRunConfig returns a 1280x720 window titled "Evergreen".
func DefaultRunConfig() RunConfig {
	return RunConfig{Title: "Evergreen", Width: 1280, Height: 720}
}
