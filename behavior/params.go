package behavior

import (
	"errors"
	"fmt"
)

// Params tunes the state machine. Durations are in seconds, distances and
// speeds in world units.
type Params struct {
	Speed       float64 `yaml:"speed" toml:"speed"`
	SpeedJitter float64 `yaml:"speed_jitter" toml:"speed_jitter"`

	IdleMin       float64 `yaml:"idle_min" toml:"idle_min"`
	IdleMax       float64 `yaml:"idle_max" toml:"idle_max"`
	SitDuration   float64 `yaml:"sit_duration" toml:"sit_duration"`
	GetUpDuration float64 `yaml:"getup_duration" toml:"getup_duration"`

	ArriveRadius float64 `yaml:"arrive_radius" toml:"arrive_radius"`
	WalkFactor   float64 `yaml:"walk_factor" toml:"walk_factor"`
	RunFactor    float64 `yaml:"run_factor" toml:"run_factor"`

	MinX float64 `yaml:"min_x" toml:"min_x"`
	MaxX float64 `yaml:"max_x" toml:"max_x"`
}

// DefaultParams returns the classic capybara tuning.
func DefaultParams() Params {
	return Params{
		Speed:         1,
		SpeedJitter:   0,
		IdleMin:       3,
		IdleMax:       6,
		SitDuration:   3,
		GetUpDuration: 0.5,
		ArriveRadius:  0.1,
		WalkFactor:    0.5,
		RunFactor:     1,
		MinX:          -5,
		MaxX:          5,
	}
}

// Validate reports the first inconsistent setting.
func (p Params) Validate() error {
	switch {
	case p.Speed <= 0:
		return fmt.Errorf("speed must be positive, got %g", p.Speed)
	case p.SpeedJitter < 0 || p.SpeedJitter >= 1:
		return fmt.Errorf("speed_jitter must be in [0,1), got %g", p.SpeedJitter)
	case p.IdleMin < 0 || p.IdleMax < p.IdleMin:
		return fmt.Errorf("idle range [%g,%g] is invalid", p.IdleMin, p.IdleMax)
	case p.SitDuration < 0 || p.GetUpDuration < 0:
		return errors.New("sit and getup durations must not be negative")
	case p.ArriveRadius <= 0:
		return fmt.Errorf("arrive_radius must be positive, got %g", p.ArriveRadius)
	case p.WalkFactor <= 0 || p.RunFactor <= 0:
		return errors.New("walk and run factors must be positive")
	case p.MaxX < p.MinX:
		return fmt.Errorf("x range [%g,%g] is invalid", p.MinX, p.MaxX)
	}
	return nil
}

func (p Params) factor(s State) float64 {
	if s == Run {
		return p.RunFactor
	}
	return p.WalkFactor
}
