package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

type Light struct {
	Position  [3]float32 `json:"position"`
	Color     [3]float32 `json:"color"`
	Intensity float32    `json:"intensity"`
}

type Simulation struct {
	StartOn            bool    `json:"start_on"`
	DesiredTemp        float32 `json:"desired_temp"`
	CurrentTemp        float32 `json:"current_temp"`
	TempStep           float32 `json:"temp_step"`
	VentAnimSpeed      float32 `json:"vent_anim_speed"`
	TempDriftSpeed     float32 `json:"temp_drift_speed"`
	WaterFillPerSecond float32 `json:"water_fill_per_second"`
}

type Droplets struct {
	SpawnRate         float32 `json:"spawn_rate"`
	Gravity           float32 `json:"gravity"`
	FillPerDrop       float32 `json:"fill_per_drop"`
	VerticalTolerance float32 `json:"vertical_tolerance"`
	RimTolerance      float32 `json:"rim_tolerance"`
	RimBounce         float32 `json:"rim_bounce"`
	Seed              uint64  `json:"seed"`
}

type Settings struct {
	TargetFPS        float32    `json:"target_fps"`
	Fullscreen       bool       `json:"fullscreen"`
	WindowWidth      int        `json:"window_width"`
	WindowHeight     int        `json:"window_height"`
	CameraMode       string     `json:"camera_mode"`
	MouseSensitivity float32    `json:"mouse_sensitivity"`
	MoveSpeed        float32    `json:"move_speed"`
	ModelPaths       []string   `json:"model_paths"`
	ShaderDir        string     `json:"shader_dir"`
	UseBlinn         bool       `json:"use_blinn"`
	Nameplate        string     `json:"nameplate"`
	SceneLight       Light      `json:"scene_light"`
	Simulation       Simulation `json:"simulation"`
	Droplets         Droplets   `json:"droplets"`
}

func Default() *Settings {
	return &Settings{
		TargetFPS:        75,
		Fullscreen:       true,
		WindowWidth:      1280,
		WindowHeight:     800,
		CameraMode:       "first_person",
		MouseSensitivity: 0.25,
		MoveSpeed:        400,
		ModelPaths: []string{
			"assets/models/10778_Toilet_V2.obj",
			"assets/models/toilet.obj",
			"../assets/models/10778_Toilet_V2.obj",
			"../assets/models/toilet.obj",
		},
		Nameplate: "AC Simulator",
		SceneLight: Light{
			Position:  [3]float32{-350, 260, 40},
			Color:     [3]float32{1, 0.95, 0.2},
			Intensity: 2.5,
		},
		Simulation: Simulation{
			StartOn:            true,
			DesiredTemp:        24,
			CurrentTemp:        30,
			TempStep:           1,
			VentAnimSpeed:      1.5,
			TempDriftSpeed:     0.5,
			WaterFillPerSecond: 0.02,
		},
		Droplets: Droplets{
			SpawnRate:         6,
			Gravity:           400,
			FillPerDrop:       0.0015,
			VerticalTolerance: 4,
			RimTolerance:      2,
			RimBounce:         50,
			Seed:              12345,
		},
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "acsim")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// LoadSettings reads the settings file at path, or the default location when
// path is empty. A missing file is created with defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		p, err := GetSettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	defaultSettings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Creating default settings file at %s", path)
			if err := createDefaultSettings(path, defaultSettings); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	return parseSettings(data), nil
}

func parseSettings(data []byte) *Settings {
	defaultSettings := Default()

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	// Missing keys keep their defaults.
	settings := Default()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings
	}

	validate(settings, defaultSettings)
	return settings
}

func validate(s, d *Settings) {
	if s.TargetFPS <= 0 || s.TargetFPS > 1000 {
		log.Printf("Invalid target_fps value %.2f, must be between 0 and 1000, using default %.2f",
			s.TargetFPS, d.TargetFPS)
		s.TargetFPS = d.TargetFPS
	}
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		log.Printf("Invalid window size %dx%d, using default %dx%d",
			s.WindowWidth, s.WindowHeight, d.WindowWidth, d.WindowHeight)
		s.WindowWidth, s.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if s.CameraMode != "first_person" && s.CameraMode != "orbit" {
		log.Printf("Invalid camera_mode %q, must be first_person or orbit, using default %q",
			s.CameraMode, d.CameraMode)
		s.CameraMode = d.CameraMode
	}
	positive(&s.MouseSensitivity, d.MouseSensitivity, "mouse_sensitivity")
	positive(&s.MoveSpeed, d.MoveSpeed, "move_speed")
	// The renderer substitutes its own default for a non-positive intensity.
	if s.SceneLight.Intensity < 0 {
		s.SceneLight.Intensity = 0
	}

	sim, dsim := &s.Simulation, &d.Simulation
	positive(&sim.TempStep, dsim.TempStep, "simulation.temp_step")
	positive(&sim.VentAnimSpeed, dsim.VentAnimSpeed, "simulation.vent_anim_speed")
	positive(&sim.TempDriftSpeed, dsim.TempDriftSpeed, "simulation.temp_drift_speed")
	if sim.WaterFillPerSecond < 0 || sim.WaterFillPerSecond > 1 {
		log.Printf("Invalid simulation.water_fill_per_second value %.4f, must be between 0.0 and 1.0, using default %.4f",
			sim.WaterFillPerSecond, dsim.WaterFillPerSecond)
		sim.WaterFillPerSecond = dsim.WaterFillPerSecond
	}
	sim.DesiredTemp = clampTemp(sim.DesiredTemp, "simulation.desired_temp")
	sim.CurrentTemp = clampTemp(sim.CurrentTemp, "simulation.current_temp")

	drops, ddrops := &s.Droplets, &d.Droplets
	if drops.SpawnRate < 0 {
		log.Printf("Invalid droplets.spawn_rate value %.2f, using default %.2f", drops.SpawnRate, ddrops.SpawnRate)
		drops.SpawnRate = ddrops.SpawnRate
	}
	positive(&drops.Gravity, ddrops.Gravity, "droplets.gravity")
	if drops.FillPerDrop < 0 || drops.FillPerDrop > 1 {
		log.Printf("Invalid droplets.fill_per_drop value %.4f, using default %.4f", drops.FillPerDrop, ddrops.FillPerDrop)
		drops.FillPerDrop = ddrops.FillPerDrop
	}
	if drops.VerticalTolerance < 0 {
		drops.VerticalTolerance = ddrops.VerticalTolerance
	}
	if drops.RimTolerance < 0 {
		drops.RimTolerance = ddrops.RimTolerance
	}
}

func positive(v *float32, def float32, name string) {
	if *v <= 0 {
		log.Printf("Invalid %s value %.2f, must be positive, using default %.2f", name, *v, def)
		*v = def
	}
}

func clampTemp(v float32, name string) float32 {
	if v < -10 || v > 40 {
		log.Printf("Invalid %s value %.1f, clamping to [-10, 40]", name, v)
		return min(max(v, -10), 40)
	}
	return v
}

func createDefaultSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
