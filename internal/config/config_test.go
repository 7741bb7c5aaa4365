package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestLoadSettingsCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk Settings
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, *Default(), onDisk)
}

func TestLoadSettingsKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeSettings(t, path, `{"target_fps": 60, "simulation": {"water_fill_per_second": 0.1}, "bogus": 1}`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, float32(60), s.TargetFPS)
	assert.Equal(t, float32(0.1), s.Simulation.WaterFillPerSecond)
	assert.Equal(t, float32(1), s.Simulation.TempStep)
	assert.Equal(t, Default().ModelPaths, s.ModelPaths)
}

func TestLoadSettingsReplacesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeSettings(t, path, `{
		"target_fps": -5,
		"window_width": 0,
		"camera_mode": "sideways",
		"move_speed": 0,
		"simulation": {"temp_step": 0, "water_fill_per_second": 3, "desired_temp": 99, "current_temp": -40},
		"droplets": {"spawn_rate": -1, "fill_per_drop": 2}
	}`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	d := Default()
	assert.Equal(t, d.TargetFPS, s.TargetFPS)
	assert.Equal(t, d.WindowWidth, s.WindowWidth)
	assert.Equal(t, d.CameraMode, s.CameraMode)
	assert.Equal(t, d.MoveSpeed, s.MoveSpeed)
	assert.Equal(t, d.Simulation.TempStep, s.Simulation.TempStep)
	assert.Equal(t, d.Simulation.WaterFillPerSecond, s.Simulation.WaterFillPerSecond)
	assert.Equal(t, float32(40), s.Simulation.DesiredTemp)
	assert.Equal(t, float32(-10), s.Simulation.CurrentTemp)
	assert.Equal(t, d.Droplets.SpawnRate, s.Droplets.SpawnRate)
	assert.Equal(t, d.Droplets.FillPerDrop, s.Droplets.FillPerDrop)
}

func TestLoadSettingsMalformedFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeSettings(t, path, `{"target_fps": `)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestNewAppState(t *testing.T) {
	s := Default()
	s.Simulation.StartOn = false
	s.Simulation.VentAnimSpeed = 3

	st := s.NewAppState()
	assert.False(t, st.IsOn)
	assert.Equal(t, float32(24), st.DesiredTemp)
	assert.Equal(t, float32(30), st.CurrentTemp)
	assert.Equal(t, float32(3), st.VentAnimSpeed)

	st.WaterLevel = 0.4
	s.Simulation.WaterFillPerSecond = 0.5
	s.ApplyTuning(&st)
	assert.Equal(t, float32(0.4), st.WaterLevel)
	assert.Equal(t, float32(0.5), st.WaterFillPerSecond)

	tune := s.DropletTuning()
	assert.Equal(t, float32(6), tune.SpawnRate)
	assert.Equal(t, float32(50), tune.RimBounce)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeSettings(t, path, `{"target_fps": 75}`)

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	_, ok := w.Poll()
	require.False(t, ok)

	writeSettings(t, path, `{"target_fps": 30, "nameplate": "Lab 3"}`)

	var got *Settings
	require.Eventually(t, func() bool {
		// Several events may arrive for one write; keep the newest.
		for {
			s, ok := w.Poll()
			if !ok {
				break
			}
			got = s
		}
		return got != nil && got.TargetFPS == 30
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Lab 3", got.Nameplate)
}
