// Package state advances the appliance simulation. Every function here is a
// pure update over *models.AppState and is called once per frame by the frame
// driver in a fixed order: power toggle, temperature keys, vent, temperature
// drift, water.
package state

import (
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FullThreshold is the water level checked by the empty and pickup gates.
	FullThreshold float32 = 0.99
	// FacingThreshold is the minimum |dot| between the camera forward vector
	// and the direction to the unit for the drain and return actions.
	FacingThreshold float32 = 0.9
)

// New returns an AppState with the default tuning, powered on.
func New() models.AppState {
	return models.AppState{
		IsOn:               true,
		DesiredTemp:        24,
		CurrentTemp:        30,
		TempChangeStep:     1,
		VentAnimSpeed:      1.5,
		TempDriftSpeed:     0.5,
		WaterFillPerSecond: 0.02,
	}
}

// HandlePowerToggle flips IsOn on a rising edge of mouseDown while the cursor
// is over the lamp. A full bowl blocks the toggle.
func HandlePowerToggle(s *models.AppState, mouseDown, overLamp bool) {
	if mouseDown && !s.PrevMouseDown && overLamp {
		TogglePower(s)
	}
	s.PrevMouseDown = mouseDown
}

// TogglePower flips IsOn unless the unit is locked and reports whether it did.
func TogglePower(s *models.AppState) bool {
	if s.LockedByFullBowl {
		return false
	}
	s.IsOn = !s.IsOn
	return true
}

func UpdateVent(s *models.AppState, dt float32) {
	var target float32
	if s.IsOn && !s.LockedByFullBowl {
		target = 1
	}

	step := s.VentAnimSpeed * dt
	if s.VentOpenness < target {
		s.VentOpenness = min(s.VentOpenness+step, target)
	} else if s.VentOpenness > target {
		s.VentOpenness = max(s.VentOpenness-step, target)
	}
}

// HandleTemperatureInput steps DesiredTemp once per key press, independent of
// power.
func HandleTemperatureInput(s *models.AppState, up, down bool) {
	if up && !s.PrevUpPressed {
		s.DesiredTemp += s.TempChangeStep
	}
	if down && !s.PrevDownPressed {
		s.DesiredTemp -= s.TempChangeStep
	}
	s.DesiredTemp = ClampTemp(s.DesiredTemp)

	s.PrevUpPressed = up
	s.PrevDownPressed = down
}

// AdjustDesiredTemp applies steps increments of TempChangeStep and clamps.
func AdjustDesiredTemp(s *models.AppState, steps int) {
	s.DesiredTemp = ClampTemp(s.DesiredTemp + float32(steps)*s.TempChangeStep)
}

func ClampTemp(t float32) float32 {
	return mgl32.Clamp(t, models.MinTemp, models.MaxTemp)
}

func UpdateTemperature(s *models.AppState, dt float32) {
	if !s.IsOn || s.LockedByFullBowl {
		return
	}

	diff := s.DesiredTemp - s.CurrentTemp
	step := s.TempDriftSpeed * dt
	if abs(diff) <= step {
		s.CurrentTemp = s.DesiredTemp
	} else if diff > 0 {
		s.CurrentTemp += step
	} else {
		s.CurrentTemp -= step
	}
	s.CurrentTemp = ClampTemp(s.CurrentTemp)
}

// UpdateWater handles the Space drain/return action and integrates the fill.
// camForward and camPos come from the camera used for this frame.
func UpdateWater(s *models.AppState, dt float32, space bool, camPos, camForward mgl32.Vec3) {
	if space && !s.PrevSpacePressed && s.HoldingBowl {
		dot := facing(camPos, camForward)
		if s.WaterLevel >= FullThreshold {
			if dot <= -FacingThreshold {
				s.WaterLevel = 0
				s.WaterAccum = 0
				s.LockedByFullBowl = false
			}
		} else if dot >= FacingThreshold {
			s.HoldingBowl = false
			s.WaterLevel = 0
			s.WaterAccum = 0
			s.LockedByFullBowl = false
		}
	}
	s.PrevSpacePressed = space

	if s.IsOn && !s.LockedByFullBowl {
		s.WaterAccum += dt
		for s.WaterAccum >= 1 {
			s.WaterAccum -= 1
			s.WaterLevel += s.WaterFillPerSecond
		}
	}

	settleWater(s)
}

// AddWater adds collected water and applies the full-bowl lock.
func AddWater(s *models.AppState, amount float32) {
	if amount <= 0 {
		return
	}
	s.WaterLevel += amount
	settleWater(s)
}

// ToggleBowl picks the bowl up or puts it down. Only a full bowl of a powered
// off unit can be handled.
func ToggleBowl(s *models.AppState) bool {
	if s.WaterLevel < FullThreshold || s.IsOn {
		return false
	}
	s.HoldingBowl = !s.HoldingBowl
	return true
}

func settleWater(s *models.AppState) {
	if s.WaterLevel >= 1 {
		s.WaterLevel = 1
		s.IsOn = false
		s.LockedByFullBowl = true
	}
}

// facing returns the cosine between the camera forward vector and the
// direction from the camera to the world origin.
func facing(camPos, camForward mgl32.Vec3) float32 {
	toOrigin := camPos.Mul(-1)
	if toOrigin.Len() == 0 || camForward.Len() == 0 {
		return 0
	}
	return camForward.Normalize().Dot(toOrigin.Normalize())
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
