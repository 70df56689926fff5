package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Mesh.Weld {
		t.Error("expected welding to be enabled by default")
	}
	if cfg.Mesh.WeldEpsilon != 0 {
		t.Errorf("expected derived weld epsilon (0), got %v", cfg.Mesh.WeldEpsilon)
	}
	if !cfg.Mesh.Normals {
		t.Error("expected normal generation to be enabled by default")
	}
	if cfg.Mesh.MaxSmoothingAngle != 175 {
		t.Errorf("expected max smoothing angle 175, got %v", cfg.Mesh.MaxSmoothingAngle)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "weld.yaml")

	yamlContent := `
mesh:
  weld: false
  weld_epsilon: 0.25
  normals: true
  max_smoothing_angle: 80

logging:
  level: "debug"
  log_file: "weld.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Mesh.Weld {
		t.Error("expected weld to be false")
	}
	if cfg.Mesh.WeldEpsilon != 0.25 {
		t.Errorf("expected weld epsilon 0.25, got %v", cfg.Mesh.WeldEpsilon)
	}
	if cfg.Mesh.MaxSmoothingAngle != 80 {
		t.Errorf("expected max smoothing angle 80, got %v", cfg.Mesh.MaxSmoothingAngle)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "weld.log" {
		t.Errorf("expected log file 'weld.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
mesh:
  weld_epsilon: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/weld.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "weld.yaml")

	if err := os.WriteFile(configPath, []byte("mesh:\n  weld_epsilon: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Mesh.WeldEpsilon != -1 {
		t.Errorf("expected weld epsilon -1 from file, got %v", cfg.Mesh.WeldEpsilon)
	}
	if !cfg.Mesh.Weld || !cfg.Mesh.Normals {
		t.Error("expected unset booleans to keep their defaults")
	}
	if cfg.Mesh.MaxSmoothingAngle != 175 {
		t.Errorf("expected default smoothing angle, got %v", cfg.Mesh.MaxSmoothingAngle)
	}
}

func TestLoadRejectsInvalidAngle(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "weld.yaml")

	if err := os.WriteFile(configPath, []byte("mesh:\n  max_smoothing_angle: 270\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if !errors.Is(err, ErrInvalidSmoothingAngle) {
		t.Errorf("expected ErrInvalidSmoothingAngle, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		angle   float32
		wantErr bool
	}{
		{"zero", 0, false},
		{"default", 175, false},
		{"straight", 180, false},
		{"negative", -1, true},
		{"too large", 180.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Mesh.MaxSmoothingAngle = tt.angle
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("mesh:\n  weld: true\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "weld.yaml")

	cfg := Default()
	cfg.Mesh.WeldEpsilon = 0.5
	cfg.Mesh.MaxSmoothingAngle = 60
	cfg.Logging.Level = "warn"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded config %+v, want %+v", loaded, cfg)
	}
}
