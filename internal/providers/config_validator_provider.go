package providers

import (
	"errors"
	"fmt"
	"memento/internal/structures"
	"time"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (v *CnfValidator) Validate() error {
	val := validate.Struct(v.conf)
	if !val.Validate() {
		return val.Errors
	}

	c := v.conf
	if c.Generator.MaxYears < c.Generator.MinYears {
		return fmt.Errorf("generator.maxYears (%d) must not be below generator.minYears (%d)", c.Generator.MaxYears, c.Generator.MinYears)
	}

	seq := c.Sequence
	if seq.Disturbance1 < 0 || seq.Disturbance2 <= seq.Disturbance1 || seq.Reveal <= seq.Disturbance2 {
		return errors.New("sequence delays must satisfy 0 <= disturbance1 < disturbance2 < reveal")
	}

	if c.Countdown.Interval < time.Second {
		return fmt.Errorf("countdown.interval must be at least 1s, got %s", c.Countdown.Interval)
	}

	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound.volume must be within [0, 1], got %v", c.Sound.Volume)
	}

	if c.Display.Timezone != "" {
		if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
			return fmt.Errorf("display.timezone: %w", err)
		}
	}

	return nil
}
