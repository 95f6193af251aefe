// Hardware PWM startup configuration
// Programs TIM2 channel 1 to drive PA0 and starts the counter.
package core

// PWMConfig describes the waveform the timer generates
type PWMConfig struct {
	SourceClock uint32      // Timer input clock in Hz
	Period      uint32      // Auto-reload value in prescaled ticks
	Duty        float64     // High-time fraction, 0 to 1
	Divisor     uint32      // Desired prescale divisor (PSC = Divisor - 1)
	Speed       OutputSpeed // Output drive strength
}

// DefaultPWMConfig returns the 1 Hz, 50% duty blink on the 8 MHz HSI clock
func DefaultPWMConfig() PWMConfig {
	return PWMConfig{
		SourceClock: 8000000,
		Period:      8000,
		Duty:        0.5,
		Divisor:     1000,
		Speed:       Speed2MHz,
	}
}

// FirmwarePWMConfig returns the 1 Hz, 50% duty blink for the clock tree
// the TinyGo stm32f103 runtime sets up before main: 8 MHz HSE x9 PLL gives
// a 72 MHz SYSCLK, APB1 runs at /2, and the timer multiplier doubles it
// back to 72 MHz for TIM2.
func FirmwarePWMConfig() PWMConfig {
	cfg := DefaultPWMConfig()
	cfg.SourceClock = 72000000
	cfg.Divisor = 9000
	return cfg
}

// Compare returns the CCR1 threshold: Period * Duty, rounded to nearest.
// Duty outside 0..1 is clamped and NaN reads as 0.
func (c PWMConfig) Compare() uint32 {
	duty := c.Duty
	if !(duty > 0) {
		return 0
	}
	if duty >= 1 {
		return c.Period
	}
	return uint32(float64(c.Period)*duty + 0.5)
}

// Prescaler returns the PSC register value. The hardware divides by PSC+1,
// so a divisor of 1000 is programmed as 999. Divisor 0 means undivided.
func (c PWMConfig) Prescaler() uint32 {
	if c.Divisor == 0 {
		return 0
	}
	return c.Divisor - 1
}

// OutputFrequency returns SourceClock / (Period * (Prescaler+1)) in Hz
func (c PWMConfig) OutputFrequency() float64 {
	ticks := float64(c.Period) * float64(c.Prescaler()+1)
	if ticks == 0 {
		return 0
	}
	return float64(c.SourceClock) / ticks
}

// DutyPercent returns the effective high time as a percentage of the period
func (c PWMConfig) DutyPercent() float64 {
	if c.Period == 0 {
		return 0
	}
	return float64(c.Compare()) * 100 / float64(c.Period)
}

// ConfigurePWM runs the startup sequence against rf. Clocks are enabled
// before the peripherals are touched, and the counter enable is the final
// write. Shared registers are updated read-modify-write; dedicated ones are
// assigned directly.
func ConfigurePWM(rf *RegisterFile, cfg PWMConfig) {
	// Clock to TIM2 and GPIO port A
	rf.RCC.APB1ENR.SetBits(RCC_APB1ENR_TIM2EN)
	tracePWM("clock-tim2", "RCC_APB1ENR", rf.RCC.APB1ENR)

	rf.RCC.APB2ENR.SetBits(RCC_APB2ENR_IOPAEN)
	tracePWM("clock-gpioa", "RCC_APB2ENR", rf.RCC.APB2ENR)

	// PA0: alternate function push-pull. CNF0 resets to 0b01 (floating
	// input), so both CNF bits are cleared before the new value goes in.
	rf.GPIOA.CRL.ClearBits(GPIO_CRL_CNF0_Msk | GPIO_CRL_MODE0_Msk)
	rf.GPIOA.CRL.SetBits(GPIO_CRL_CNF0_AF_PP | cfg.Speed.modeBits())
	tracePWM("pin-af-pp", "GPIOA_CRL", rf.GPIOA.CRL)

	rf.TIM2.ARR.Set(cfg.Period)
	tracePWM("period", "TIM2_ARR", rf.TIM2.ARR)

	rf.TIM2.CCR1.Set(cfg.Compare())
	tracePWM("duty", "TIM2_CCR1", rf.TIM2.CCR1)

	rf.TIM2.CCMR1.ClearBits(TIM_CCMR1_OC1M_Msk)
	rf.TIM2.CCMR1.SetBits(TIM_CCMR1_OC1M_PWM1)
	tracePWM("pwm-mode1", "TIM2_CCMR1", rf.TIM2.CCMR1)

	rf.TIM2.CCER.SetBits(TIM_CCER_CC1E)
	tracePWM("output-enable", "TIM2_CCER", rf.TIM2.CCER)

	rf.TIM2.PSC.Set(cfg.Prescaler())
	tracePWM("prescaler", "TIM2_PSC", rf.TIM2.PSC)

	// Start counting; must stay last
	rf.TIM2.CR1.SetBits(TIM_CR1_CEN)
	tracePWM("counter-enable", "TIM2_CR1", rf.TIM2.CR1)
}

func tracePWM(step, name string, reg Register32) {
	if !debugEnabled {
		return
	}
	DebugPrintln("[PWM] " + step + " " + name + "=" + hex32(reg.Get()))
}
