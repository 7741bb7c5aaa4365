package cmd

import (
	"log"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/ThatOtherAndrew/acsim/internal/camera"
	"github.com/ThatOtherAndrew/acsim/internal/config"
	"github.com/ThatOtherAndrew/acsim/internal/draw"
	"github.com/ThatOtherAndrew/acsim/internal/layout"
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/ThatOtherAndrew/acsim/internal/opengl"
	"github.com/ThatOtherAndrew/acsim/internal/scene"
	"github.com/ThatOtherAndrew/acsim/internal/stats"
	"github.com/ThatOtherAndrew/acsim/internal/text"
	"github.com/ThatOtherAndrew/acsim/internal/window"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the simulator window",
	Run:   Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()
}

func Run(cmd *cobra.Command, args []string) {
	path := configPath
	if path == "" {
		p, err := config.GetSettingsPath()
		if err != nil {
			log.Fatal("Failed to get settings path:", err)
		}
		path = p
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}
	if modelPath != "" {
		settings.ModelPaths = append([]string{modelPath}, settings.ModelPaths...)
	}
	if windowed {
		settings.Fullscreen = false
	}

	win, err := window.New(window.Options{
		Title:      "AC Simulator",
		Width:      settings.WindowWidth,
		Height:     settings.WindowHeight,
		Fullscreen: settings.Fullscreen,
	})
	if err != nil {
		log.Fatal("Failed to create window:", err)
	}
	defer win.Destroy()

	renderer := opengl.New(opengl.Options{ShaderDir: settings.ShaderDir, UseBlinn: settings.UseBlinn})
	if err := renderer.InitGL(); err != nil {
		log.Fatal("Failed to initialize OpenGL:", err)
	}
	defer renderer.Close()
	applyLight(renderer, settings)
	modelID := renderer.LoadFirstModel(settings.ModelPaths)

	rast, err := text.New()
	if err != nil {
		log.Printf("Failed to load font, text disabled: %v", err)
	} else {
		defer rast.Close()
	}

	app := &models.App{
		State:     settings.NewAppState(),
		Tuning:    settings.DropletTuning(),
		Rand:      rand.New(rand.NewPCG(settings.Droplets.Seed, 0)),
		DepthTest: true,
		Cull:      true,
	}

	width, height := win.GetSize()
	app.WindowWidth, app.WindowHeight = width, height
	cam := camera.New(width, height,
		camera.WithMode(camera.ParseMode(settings.CameraMode)),
		camera.WithSensitivity(settings.MouseSensitivity),
		camera.WithMoveSpeed(settings.MoveSpeed),
	)

	sim := scene.New(app)
	drawer := draw.New(app, renderer, rast, modelID, settings.Nameplate)
	defer drawer.Close()

	watcher, err := config.Watch(path)
	if err != nil {
		log.Printf("Settings hot reload disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	targetFPS := settings.TargetFPS
	frameStats := stats.New(time.Now(), true)
	lastTime := time.Now()

	for !win.ShouldClose() {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart
		frameStats.Tick(frameStart)

		if watcher != nil {
			if s, ok := watcher.Poll(); ok {
				s.ApplyTuning(&app.State)
				app.Tuning = s.DropletTuning()
				applyLight(renderer, s)
				drawer.SetNameplate(s.Nameplate)
				targetFPS = s.TargetFPS
			}
		}

		win.PollEvents()
		snap := win.Snapshot()
		app.WindowWidth, app.WindowHeight = snap.Width, snap.Height
		cam.SetWindowSize(snap.Width, snap.Height)
		lay := layout.New(snap.Width, snap.Height)

		if !sim.Step(cam, lay, snap, dt) {
			win.SetShouldClose(true)
		}
		win.SetCursorHidden(app.CursorHidden)

		fbWidth, fbHeight := win.FramebufferSize()
		drawer.Draw(draw.Frame{
			Layout:     lay,
			View:       cam.View(),
			Projection: cam.Projection(),
			CamPos:     cam.Position(),
			CamForward: cam.Forward(),
			Width:      fbWidth,
			Height:     fbHeight,
			FPSLabel:   frameStats.Label(),
		})
		win.SwapBuffers()

		if d := stats.Remaining(frameStart, time.Now(), targetFPS); d > 0 {
			time.Sleep(d)
		}
	}
}

func applyLight(r *opengl.Renderer, s *config.Settings) {
	r.SetSceneLight(s.SceneLight.PositionVec(), s.SceneLight.ColorVec(), s.SceneLight.Intensity)
}
