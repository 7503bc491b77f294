package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgconfig "github.com/starford/hemolymph/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Render.MaxDepth != 16 {
		t.Errorf("max depth = %d, want 16", cfg.Render.MaxDepth)
	}
	if cfg.Site.Web().Title != "Hemolymph" {
		t.Errorf("site title = %q", cfg.Site.Web().Title)
	}
}

func TestConfig_RequiresCatalogPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Catalog.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty catalog path should fail validation")
	}
}

func TestRenderConfig_Bounds(t *testing.T) {
	for _, depth := range []int{0, -1, 65} {
		cfg := RenderConfig{MaxDepth: depth}
		if err := cfg.Validate(); err == nil {
			t.Errorf("max depth %d should fail validation", depth)
		}
	}
	cfg := RenderConfig{MaxDepth: 4}
	if err := cfg.Validate(); err != nil {
		t.Errorf("max depth 4: %v", err)
	}
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "catalog:\n  path: /srv/cards\nsite:\n  title: Bloodless\nrender:\n  max_depth: 8\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Path != "/srv/cards" || cfg.Site.Title != "Bloodless" || cfg.Render.MaxDepth != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.App.HTTP.Port != 8080 {
		t.Errorf("port default lost: %d", cfg.App.HTTP.Port)
	}
}
