package profile

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"stm32pwm/core"
)

// maxDivisor is the largest divisor a 16-bit prescaler can express
const maxDivisor = core.TIM_MaxCount + 1

// Validate checks cfg against the TIM2 register widths. Every problem is
// reported; use multierr.Errors to split them.
func Validate(cfg core.PWMConfig) error {
	var err error

	if cfg.SourceClock == 0 {
		err = multierr.Append(err, errors.New("source clock must be non-zero"))
	}
	if cfg.Period == 0 || cfg.Period > core.TIM_MaxCount {
		err = multierr.Append(err, errors.Errorf("period %d out of range 1..%d", cfg.Period, core.TIM_MaxCount))
	}
	if cfg.Divisor == 0 || cfg.Divisor > maxDivisor {
		err = multierr.Append(err, errors.Errorf("divisor %d out of range 1..%d", cfg.Divisor, maxDivisor))
	}
	if !(cfg.Duty >= 0 && cfg.Duty <= 1) {
		err = multierr.Append(err, errors.Errorf("duty %g out of range 0..1", cfg.Duty))
	}
	switch cfg.Speed {
	case core.Speed10MHz, core.Speed2MHz, core.Speed50MHz:
	default:
		err = multierr.Append(err, errors.Errorf("output speed %d is not an output mode", uint32(cfg.Speed)))
	}

	return err
}

// Solve picks a period and prescale divisor producing freq from clock.
// Divisors that divide the tick count exactly are preferred, smallest
// first, so the period keeps as much duty resolution as possible. When no
// exact pair exists the smallest divisor that fits is used and the period
// is rounded.
func Solve(clock uint32, freq float64) (period, divisor uint32, err error) {
	if clock == 0 {
		return 0, 0, errors.New("source clock must be non-zero")
	}
	if !(freq > 0) || math.IsInf(freq, 1) {
		return 0, 0, errors.Errorf("frequency %g must be positive and finite", freq)
	}

	ticks := uint64(float64(clock)/freq + 0.5)
	if ticks < 1 {
		return 0, 0, errors.Errorf("frequency %g Hz is above the %d Hz source clock", freq, clock)
	}
	if ticks > uint64(core.TIM_MaxCount)*maxDivisor {
		return 0, 0, errors.Errorf("frequency %g Hz is too low for a %d Hz source clock", freq, clock)
	}

	minDiv := (ticks + core.TIM_MaxCount - 1) / core.TIM_MaxCount

	for d := minDiv; d <= maxDivisor; d++ {
		if ticks%d == 0 {
			return uint32(ticks / d), uint32(d), nil
		}
	}

	period = uint32((ticks + minDiv/2) / minDiv)
	if period > core.TIM_MaxCount {
		period = core.TIM_MaxCount
	}
	return period, uint32(minDiv), nil
}
