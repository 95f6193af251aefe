package core

// Register32 is the register access interface that configuration code uses.
// It is exactly the method set of TinyGo's runtime/volatile.Register32, so
// memory-mapped registers satisfy it directly on hardware, while host builds
// plug in SimRegister.
type Register32 interface {
	// Get returns the current register value
	Get() uint32

	// Set writes the whole register
	Set(value uint32)

	// SetBits ORs value into the register (read-modify-write)
	SetBits(value uint32)

	// ClearBits clears the bits in value (read-modify-write)
	ClearBits(value uint32)

	// HasBits reports whether any bit in value is set
	HasBits(value uint32) bool
}

// RCCRegisters holds the reset and clock control registers that gate
// peripheral clocks.
type RCCRegisters struct {
	APB2ENR Register32
	APB1ENR Register32
}

// GPIORegisters holds the port configuration register for pins 0-7.
type GPIORegisters struct {
	CRL Register32
}

// TimerRegisters holds the general-purpose timer registers used for
// channel 1 PWM output.
type TimerRegisters struct {
	CR1   Register32
	CCMR1 Register32
	CCER  Register32
	PSC   Register32
	ARR   Register32
	CCR1  Register32
}

// RegisterFile is the set of peripheral registers touched at startup
type RegisterFile struct {
	RCC   RCCRegisters
	GPIOA GPIORegisters
	TIM2  TimerRegisters
}

// Named returns every register in the file keyed by its reference-manual name
func (rf *RegisterFile) Named() []NamedRegister {
	return []NamedRegister{
		{"RCC_APB2ENR", rf.RCC.APB2ENR},
		{"RCC_APB1ENR", rf.RCC.APB1ENR},
		{"GPIOA_CRL", rf.GPIOA.CRL},
		{"TIM2_CR1", rf.TIM2.CR1},
		{"TIM2_CCMR1", rf.TIM2.CCMR1},
		{"TIM2_CCER", rf.TIM2.CCER},
		{"TIM2_PSC", rf.TIM2.PSC},
		{"TIM2_ARR", rf.TIM2.ARR},
		{"TIM2_CCR1", rf.TIM2.CCR1},
	}
}

// NamedRegister pairs a register with its reference-manual name
type NamedRegister struct {
	Name string
	Reg  Register32
}

// Snapshot reads every register into a name -> value image
func (rf *RegisterFile) Snapshot() map[string]uint32 {
	regs := rf.Named()
	image := make(map[string]uint32, len(regs))
	for _, r := range regs {
		image[r.Name] = r.Reg.Get()
	}
	return image
}
