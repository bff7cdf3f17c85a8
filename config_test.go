package evergreen

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSceneConfigValid(t *testing.T) {
	if err := DefaultSceneConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultSceneConfigOrnaments(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		count int
		color Color
	}{
		{"gifts", KindBox, 150, Hex(0x8b0000)},
		{"gold", KindSphere, 200, Hex(0xFFD700)},
		{"silver", KindSphere, 100, Hex(0xC0C0C0)},
	}
	got := DefaultSceneConfig().Ornaments
	if len(got) != len(tests) {
		t.Fatalf("ornament groups = %d, want %d", len(got), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := got[i]
			if g.Name != tt.name || g.Kind != tt.kind || g.Count != tt.count || g.Color != tt.color {
				t.Errorf("group = %s %s x%d %v, want %s %s x%d %v",
					g.Name, g.Kind, g.Count, g.Color, tt.name, tt.kind, tt.count, tt.color)
			}
		})
	}
}

func TestParseSceneConfigMergesOverDefaults(t *testing.T) {
	src := `
seed: 7
startAssembled: true
background: "#102030"
foliage:
  count: 500
camera:
  fov: 60
star:
  tree: {x: 0, y: 9, z: 0}
`
	cfg, err := ParseSceneConfig([]byte(src))
	if err != nil {
		t.Fatalf("ParseSceneConfig: %v", err)
	}
	def := DefaultSceneConfig()

	if cfg.Seed != 7 || !cfg.StartAssembled {
		t.Errorf("seed/startAssembled = %d/%v", cfg.Seed, cfg.StartAssembled)
	}
	if cfg.Foliage.Count != 500 {
		t.Errorf("foliage count = %d, want 500", cfg.Foliage.Count)
	}
	// Unspecified fields keep their defaults.
	if cfg.Foliage.ConeHeight != def.Foliage.ConeHeight || !cfg.Foliage.Spiral {
		t.Errorf("foliage defaults lost: %+v", cfg.Foliage)
	}
	if cfg.Camera.FOV != 60 || cfg.Camera.MaxDistance != def.Camera.MaxDistance {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Star.Tree.Y != 9 || cfg.Star.Scatter != def.Star.Scatter {
		t.Errorf("star = %+v", cfg.Star)
	}
	if len(cfg.Ornaments) != len(def.Ornaments) {
		t.Errorf("ornaments = %d groups, want %d", len(cfg.Ornaments), len(def.Ornaments))
	}
	want := Hex(0x102030)
	if math.Abs(cfg.Background.R-want.R) > 1e-9 || cfg.Background.A != 1 {
		t.Errorf("background = %+v, want %+v", cfg.Background, want)
	}
}

func TestParseSceneConfigOrnamentList(t *testing.T) {
	src := `
ornaments:
  - name: bells
    kind: sphere
    count: 12
    coneHeight: 10
    coneBaseRadius: 4
    coneYOffset: -4
    scatterRadius: 15
    scale: {min: 0.3, max: 0.5}
    color: {r: 1, g: 0.8, b: 0}
`
	cfg, err := ParseSceneConfig([]byte(src))
	if err != nil {
		t.Fatalf("ParseSceneConfig: %v", err)
	}
	if len(cfg.Ornaments) != 1 {
		t.Fatalf("ornaments = %d, want 1 (list replaces defaults)", len(cfg.Ornaments))
	}
	o := cfg.Ornaments[0]
	if o.Name != "bells" || o.Kind != KindSphere || o.Count != 12 {
		t.Errorf("ornament = %+v", o)
	}
	if o.Scale != (Range{Min: 0.3, Max: 0.5}) {
		t.Errorf("scale = %+v", o.Scale)
	}
	if o.Color.A != 1 || o.Color.G != 0.8 {
		t.Errorf("mapping color = %+v, want alpha defaulted to 1", o.Color)
	}
}

func TestParseSceneConfigRejects(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		invalid bool // wraps ErrInvalidConfig
		substr  string
	}{
		{"zero count", "foliage: {count: 0}", true, "count"},
		{"negative radius", "foliage: {scatterRadius: -1}", true, "scatter radius"},
		{"inverted scale", "foliage: {scale: {min: 2, max: 1}}", true, "scale"},
		{"ornament kind", "ornaments: [{name: x, kind: foliage, count: 1, coneHeight: 1, coneBaseRadius: 1, scatterRadius: 1, scale: {min: 1, max: 1}}]", true, "ornament kind"},
		{"star scale", "star: {scale: 0}", true, "star"},
		{"camera fov", "camera: {fov: 0}", true, "fov"},
		{"unknown kind", "foliage: {kind: tinsel}", false, "tinsel"},
		{"bad color", "background: '#12'", false, "hex digits"},
		{"bad yaml", "foliage: [", false, "parse scene config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneConfig([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidConfig) = %v, want %v (%v)", got, tt.invalid, err)
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q does not mention %q", err, tt.substr)
			}
		})
	}
}

func TestSceneConfigRoundTrip(t *testing.T) {
	def := DefaultSceneConfig()
	data, err := MarshalSceneConfig(def)
	if err != nil {
		t.Fatalf("MarshalSceneConfig: %v", err)
	}
	if !strings.Contains(string(data), "kind: box") {
		t.Errorf("kinds not written by name:\n%s", data)
	}
	if !strings.Contains(string(data), "#0b4f32") {
		t.Errorf("colors not written as hex:\n%s", data)
	}
	back, err := ParseSceneConfig(data)
	if err != nil {
		t.Fatalf("ParseSceneConfig: %v", err)
	}
	if back.Foliage.Count != def.Foliage.Count || len(back.Ornaments) != len(def.Ornaments) {
		t.Errorf("round trip changed groups")
	}
	if back.Ornaments[0].Color.HexString() != def.Ornaments[0].Color.HexString() {
		t.Errorf("round trip color = %s, want %s",
			back.Ornaments[0].Color.HexString(), def.Ornaments[0].Color.HexString())
	}
}

func TestLoadSceneConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("seed: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadSceneConfig(path)
	if err != nil {
		t.Fatalf("LoadSceneConfig: %v", err)
	}
	if cfg.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Seed)
	}

	_, err = LoadSceneConfig(filepath.Join(dir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("missing file error = %v, want path in message", err)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{1, 0, 0, 1}},
		{"0x00ff00", Color{0, 1, 0, 1}},
		{"0000ff80", Color{0, 0, 1, 128.0 / 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatalf("ParseHexColor: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
	if _, err := ParseHexColor("#zzzzzz"); err == nil {
		t.Error("expected error for non-hex digits")
	}
}
