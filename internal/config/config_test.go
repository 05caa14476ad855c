package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c != Default() {
		t.Errorf("Expected defaults, got %+v", c)
	}
}

func TestFromEnv(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"PARKMAP_LAYOUT":        "lot.geojson",
		"REACT_APP_API_URL":     "https://example.com/status",
		"PARKMAP_POLL_INTERVAL": "30s",
		"PARKMAP_CANVAS":        "800x400",
		"PARKMAP_MARGIN":        "10",
		"LOCATION_REGION":       "ap-southeast-1",
		"LOCATION_MAP_NAME":     "Lot",
		"LOCATION_API_KEY":      "k",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c.Layout != "lot.geojson" || c.StatusURL != "https://example.com/status" {
		t.Errorf("Unexpected sources %+v", c)
	}
	if c.PollInterval != 30*time.Second {
		t.Errorf("Expected 30s interval, got %v", c.PollInterval)
	}
	if c.Canvas.Width != 800 || c.Canvas.Height != 400 || c.Canvas.Margin != 10 {
		t.Errorf("Unexpected canvas %+v", c.Canvas)
	}
	if !c.Map.Enabled() {
		t.Errorf("Expected map config to be enabled")
	}
}

func TestFromEnvErrors(t *testing.T) {
	for _, kv := range [][2]string{
		{"PARKMAP_POLL_INTERVAL", "soon"},
		{"PARKMAP_HTTP_TIMEOUT", "10"},
		{"PARKMAP_CANVAS", "wide"},
		{"PARKMAP_MARGIN", "x"},
	} {
		t.Run(kv[0], func(t *testing.T) {
			if _, err := FromEnv(env(map[string]string{kv[0]: kv[1]})); err == nil {
				t.Errorf("Expected an error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize(" 1200X520 ")
	if err != nil || w != 1200 || h != 520 {
		t.Errorf("Expected 1200x520, got %vx%v (%v)", w, h, err)
	}
	if _, _, err := ParseSize("0x5"); err == nil {
		t.Errorf("Expected an error for a zero width")
	}
}

func TestLoadDotEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(p, []byte("PARKMAP_LISTEN=:9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PARKMAP_LISTEN", "")
	os.Unsetenv("PARKMAP_LISTEN")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Listen != ":9999" {
		t.Errorf("Expected listen from .env, got %q", c.Listen)
	}
}

func TestLoadDotEnvErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("Expected a missing file to be skipped, got %v", err)
	}
	bad := filepath.Join(dir, "bad.env")
	if err := os.WriteFile(bad, []byte("BAD-KEY=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Expected an error for a malformed .env file")
	}
}
