package config

import (
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

// NewAppState builds the startup appliance state.
func (s *Settings) NewAppState() models.AppState {
	st := models.AppState{
		IsOn:        s.Simulation.StartOn,
		DesiredTemp: s.Simulation.DesiredTemp,
		CurrentTemp: s.Simulation.CurrentTemp,
	}
	s.ApplyTuning(&st)
	return st
}

// ApplyTuning copies the simulation speeds onto a running state without
// touching its power, temperatures or water.
func (s *Settings) ApplyTuning(st *models.AppState) {
	st.TempChangeStep = s.Simulation.TempStep
	st.VentAnimSpeed = s.Simulation.VentAnimSpeed
	st.TempDriftSpeed = s.Simulation.TempDriftSpeed
	st.WaterFillPerSecond = s.Simulation.WaterFillPerSecond
}

func (s *Settings) DropletTuning() models.DropletTuning {
	return models.DropletTuning{
		SpawnRate:         s.Droplets.SpawnRate,
		Gravity:           s.Droplets.Gravity,
		FillPerDrop:       s.Droplets.FillPerDrop,
		VerticalTolerance: s.Droplets.VerticalTolerance,
		RimTolerance:      s.Droplets.RimTolerance,
		RimBounce:         s.Droplets.RimBounce,
	}
}

func (l Light) PositionVec() mgl32.Vec3 { return mgl32.Vec3(l.Position) }
func (l Light) ColorVec() mgl32.Vec3    { return mgl32.Vec3(l.Color) }
