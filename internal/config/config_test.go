package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "joint" {
		t.Errorf("expected model joint, got %s", cfg.Model)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if !cfg.Friction.Enabled {
		t.Error("friction should be enabled by default")
	}
	if cfg.Friction.Params.Ts <= cfg.Friction.Params.Tc {
		t.Error("static friction should exceed Coulomb friction")
	}
}

func TestFrictionParamsPinsDt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.002

	p := cfg.FrictionParams()
	if p.Dt != 0.002 {
		t.Errorf("friction dt = %f, want simulation dt 0.002", p.Dt)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("joint", "breakaway")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.ControllerParams.Torque != 5.0 {
		t.Errorf("expected torque 5.0, got %f", cfg.ControllerParams.Torque)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("joint", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "stick"); cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("joint")
	if len(presets) == 0 {
		t.Error("expected presets for joint")
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestGetInitState(t *testing.T) {
	tests := []struct {
		model    string
		expected int
	}{
		{"joint", 2},
		{"pendulum", 2},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Model = tt.model
		state := cfg.GetInitState()
		if len(state) != tt.expected {
			t.Errorf("model %s: expected %d states, got %d", tt.model, tt.expected, len(state))
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Model = "pendulum"
	cfg.Friction.Params.Ts = 3.5
	cfg.ControllerParams.Target = 0.7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Model != "pendulum" {
		t.Errorf("model = %s, want pendulum", loaded.Model)
	}
	if loaded.Friction.Params.Ts != 3.5 {
		t.Errorf("Ts = %f, want 3.5", loaded.Friction.Params.Ts)
	}
	if loaded.ControllerParams.Target != 0.7 {
		t.Errorf("target = %f, want 0.7", loaded.ControllerParams.Target)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
