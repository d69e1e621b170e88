package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.CurveNoneThresholdDeg == nil || *cfg.CurveNoneThresholdDeg != 8.0 {
		t.Errorf("Expected CurveNoneThresholdDeg 8.0, got %v", cfg.CurveNoneThresholdDeg)
	}
	if cfg.OvertakeMaxTracked == nil || *cfg.OvertakeMaxTracked != 8 {
		t.Errorf("Expected OvertakeMaxTracked 8, got %v", cfg.OvertakeMaxTracked)
	}
	if cfg.NarrationUnits == nil || *cfg.NarrationUnits != "metric" {
		t.Errorf("Expected NarrationUnits metric, got %v", cfg.NarrationUnits)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// TestDefaultsFileMatchesAccessors keeps config/tuning.defaults.json and
// the Get* fallbacks in step.
func TestDefaultsFileMatchesAccessors(t *testing.T) {
	fromFile := MustLoadDefaultConfig()

	want, err := json.Marshal(DefaultTuningConfig())
	if err != nil {
		t.Fatalf("marshal defaults: %v", err)
	}
	got, err := json.Marshal(fromFile)
	if err != nil {
		t.Fatalf("marshal file config: %v", err)
	}

	var wantMap, gotMap map[string]any
	if err := json.Unmarshal(want, &wantMap); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(got, &gotMap); err != nil {
		t.Fatal(err)
	}
	for k, v := range wantMap {
		if gotMap[k] != v {
			t.Errorf("%s: defaults file has %v, accessor default is %v", k, gotMap[k], v)
		}
	}
	if len(gotMap) != len(wantMap) {
		t.Errorf("defaults file has %d keys, accessors define %d", len(gotMap), len(wantMap))
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "curve_none_threshold_deg": 10,
  "lookahead_max": 250,
  "overtake_max_scanned": 4,
  "slowdown_duration_ticks": 40,
  "narration_units": "imperial"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if got := cfg.GetCurveNoneThresholdDeg(); got != 10 {
		t.Errorf("GetCurveNoneThresholdDeg() = %f, want 10", got)
	}
	if got := cfg.GetLookaheadMax(); got != 250 {
		t.Errorf("GetLookaheadMax() = %f, want 250", got)
	}
	if got := cfg.GetOvertakeMaxScanned(); got != 4 {
		t.Errorf("GetOvertakeMaxScanned() = %d, want 4", got)
	}
	if got := cfg.GetSlowdownDurationTicks(); got != 40 {
		t.Errorf("GetSlowdownDurationTicks() = %d, want 40", got)
	}
	if got := cfg.GetNarrationUnits(); got != "imperial" {
		t.Errorf("GetNarrationUnits() = %q, want imperial", got)
	}
	// Omitted fields fall back to defaults.
	if got := cfg.GetLookaheadMin(); got != 50 {
		t.Errorf("GetLookaheadMin() = %f, want 50", got)
	}
}

func TestLoadTuningConfigMissing(t *testing.T) {
	_, err := LoadTuningConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadTuningConfigWrongExtension(t *testing.T) {
	_, err := LoadTuningConfig("tuning.yaml")
	if err == nil {
		t.Error("Expected error for non-json extension, got nil")
	}
}

func TestLoadTuningConfigInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.json")

	invalidJSON := `{
  "lookahead_min": "far"
`
	if err := os.WriteFile(configPath, []byte(invalidJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadTuningConfig(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{name: "valid config", cfg: DefaultTuningConfig(), wantErr: false},
		{name: "empty config is valid", cfg: &TuningConfig{}, wantErr: false},
		{name: "zero friction", cfg: &TuningConfig{DefaultFriction: ptrFloat64(0)}, wantErr: true},
		{name: "none threshold too large", cfg: &TuningConfig{CurveNoneThresholdDeg: ptrFloat64(30)}, wantErr: true},
		{name: "lookahead min above max", cfg: &TuningConfig{LookaheadMin: ptrFloat64(400)}, wantErr: true},
		{name: "slowdown min above max", cfg: &TuningConfig{SlowdownMinDistance: ptrFloat64(500)}, wantErr: true},
		{name: "curve cooldown floor above ceiling", cfg: &TuningConfig{CurveCooldownMinTicks: ptrInt64(1000)}, wantErr: true},
		{name: "zero sample interval", cfg: &TuningConfig{ScanSampleInterval: ptrFloat64(0)}, wantErr: true},
		{name: "negative lane width", cfg: &TuningConfig{LaneWidth: ptrFloat64(-1)}, wantErr: true},
		{name: "negative overtake scan cap", cfg: &TuningConfig{OvertakeMaxScanned: ptrInt(-1)}, wantErr: true},
		{name: "min speed above max", cfg: &TuningConfig{MinSpeed: ptrFloat64(70)}, wantErr: true},
		{name: "ceiling headroom below one", cfg: &TuningConfig{CeilingHeadroom: ptrFloat64(0.9)}, wantErr: true},
		{name: "unknown narration units", cfg: &TuningConfig{NarrationUnits: ptrString("furlongs")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
