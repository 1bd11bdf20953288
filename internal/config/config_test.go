package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transport.Service != "ad" {
		t.Errorf("Service = %q, want %q", cfg.Transport.Service, "ad")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.toml")
	content := `
[transport]
service = "ad-dev"
namespace = "/tmp/ns.test"

[script]
profile = "/home/me/.ads.lua"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transport.Service != "ad-dev" {
		t.Errorf("Service = %q", cfg.Transport.Service)
	}
	if cfg.Transport.Namespace != "/tmp/ns.test" {
		t.Errorf("Namespace = %q", cfg.Transport.Namespace)
	}
	if cfg.Script.Profile != "/home/me/.ads.lua" {
		t.Errorf("Profile = %q", cfg.Script.Profile)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.toml")
	if err := os.WriteFile(path, []byte("[transport]\nnamespace = \"/tmp/ns\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transport.Service != "ad" {
		t.Errorf("Service = %q, want default", cfg.Transport.Service)
	}
	if cfg.Transport.Namespace != "/tmp/ns" {
		t.Errorf("Namespace = %q", cfg.Transport.Namespace)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.toml")
	if err := os.WriteFile(path, []byte("transport = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed TOML")
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/ads/custom.toml")
	if got := DefaultPath(); got != "/etc/ads/custom.toml" {
		t.Errorf("DefaultPath = %q", got)
	}
}
