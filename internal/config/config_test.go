package config

// Notes:
// - Name lookup changes the working directory with t.Chdir, so those tests
//   cannot run in parallel.
// - The user config directory branch is exercised through XDG_CONFIG_HOME,
//   which only applies on Linux and BSD.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-findoc/internal/dateutil"
	"github.com/alnah/go-findoc/internal/overlay"
)

const fullConfig = `
assets:
  basePath: ./assets
output:
  defaultDir: ./out
render:
  timeout: 45s
  grid: true
  marginTop: 15
  marginBottom: 25
footer:
  text: "Documento riservato"
document:
  dateFormat: iso
placements:
  garanzia:
    - image: sing_1.png
      column: 3
      row: 30
      scale: 0.2
      page: 0
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// Parse
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(fullConfig))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if cfg.Assets.BasePath != "./assets" {
		t.Errorf("Assets.BasePath = %q, want %q", cfg.Assets.BasePath, "./assets")
	}
	if cfg.Output.DefaultDir != "./out" {
		t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "./out")
	}
	if !cfg.Render.Grid {
		t.Error("Render.Grid = false, want true")
	}
	if cfg.Render.MarginTop != 15 || cfg.Render.MarginBottom != 25 {
		t.Errorf("Render margins = %v/%v, want 15/25", cfg.Render.MarginTop, cfg.Render.MarginBottom)
	}
	if d, err := cfg.Render.TimeoutDuration(); err != nil || d != 45*time.Second {
		t.Errorf("TimeoutDuration() = %v, %v, want 45s", d, err)
	}
	if cfg.Footer.Text != "Documento riservato" {
		t.Errorf("Footer.Text = %q", cfg.Footer.Text)
	}
	if cfg.Document.DateFormat != "iso" {
		t.Errorf("Document.DateFormat = %q, want iso", cfg.Document.DateFormat)
	}

	got := cfg.Placements.For("garanzia")
	want := []overlay.Placement{{Image: "sing_1.png", Column: 3, Row: 30, Scale: 0.2, Page: 0}}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Placements[garanzia] = %+v, want %+v", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty document", "", ErrConfigParse},
		{"unknown top-level field", "style: corporate\n", ErrConfigParse},
		{"unknown nested field", "render:\n  landscape: true\n", ErrConfigParse},
		{"malformed yaml", "render: [\n", ErrConfigParse},
		{"bad timeout", "render:\n  timeout: soon\n", ErrInvalidValue},
		{"negative timeout", "render:\n  timeout: -5s\n", ErrInvalidValue},
		{"timeout above limit", "render:\n  timeout: 1h\n", ErrInvalidValue},
		{"negative margin", "render:\n  marginTop: -1\n", ErrInvalidValue},
		{"margin above limit", "render:\n  marginBottom: 150\n", ErrInvalidValue},
		{"bad date format", "document:\n  dateFormat: \"[DD\"\n", dateutil.ErrInvalidDateFormat},
		{
			"placement without image",
			"placements:\n  carta:\n    - column: 1\n      row: 1\n      scale: 1\n",
			ErrInvalidValue,
		},
		{
			"placement with zero scale",
			"placements:\n  carta:\n    - image: logo.png\n      column: 1\n      row: 1\n",
			ErrInvalidValue,
		},
		{"footer too long", "footer:\n  text: " + strings.Repeat("x", MaxTextLength+1) + "\n", ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Parse([]byte(tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if cfg != nil {
				t.Error("Parse() returned a config alongside an error")
			}
		})
	}
}

func TestParse_InputTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("footer:\n  text: x\n# " + strings.Repeat("a", MaxInputSize) + "\n")
	if _, err := Parse(data); !errors.Is(err, ErrConfigParse) {
		t.Errorf("Parse() error = %v, want ErrConfigParse", err)
	}
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Render.Grid {
		t.Error("Render.Grid = true, want false")
	}
	if cfg.Placements != nil {
		t.Errorf("Placements = %v, want nil", cfg.Placements)
	}
	if d, err := cfg.Render.TimeoutDuration(); err != nil || d != 0 {
		t.Errorf("TimeoutDuration() = %v, %v, want 0", d, err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate_Placements(t *testing.T) {
	t.Parallel()

	cfg := &Config{Placements: overlay.Table{" ": {{Image: "logo.png", Column: 1, Row: 1, Scale: 1}}}}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Validate() error = %v, want ErrInvalidValue for blank document type", err)
	}

	cfg = &Config{Placements: overlay.DefaultTable()}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with default table error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// LoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig_Path(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "prod.yaml", fullConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if !cfg.Render.Grid {
		t.Error("Render.Grid = false, want true")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	invalid := writeConfig(t, dir, "invalid.yaml", "unknown: 1\n")

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty name", "", ErrEmptyConfigName},
		{"missing path", filepath.Join(dir, "missing.yaml"), ErrConfigNotFound},
		{"unknown name", "definitely-not-a-findoc-config", ErrConfigNotFound},
		{"invalid content", invalid, ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_NameInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "local.yml", "render:\n  grid: true\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("local")
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if !cfg.Render.Grid {
		t.Error("Render.Grid = false, want true")
	}
}

func TestLoadConfig_NameInUserConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives os.UserConfigDir on Linux")
	}

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	if err := os.MkdirAll(filepath.Join(home, appDir), 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	writeConfig(t, filepath.Join(home, appDir), "studio.yaml", "footer:\n  text: Studio\n")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("studio")
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Footer.Text != "Studio" {
		t.Errorf("Footer.Text = %q, want Studio", cfg.Footer.Text)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("prod")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the working directory entries", paths)
	}
	if paths[0] != "prod.yaml" || paths[1] != "prod.yml" {
		t.Errorf("SearchPaths() starts with %v, want prod.yaml, prod.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, appDir) {
			t.Errorf("SearchPaths() entry %q outside %s", p, appDir)
		}
	}
}
