package core

// STM32F103 (medium density) peripheral memory map.
// See RM0008 sections 7.3, 9.2 and 15.4.
const (
	rccBase   = 0x40021000
	gpioaBase = 0x40010800
	tim2Base  = 0x40000000

	rccAPB2ENR = rccBase + 0x18
	rccAPB1ENR = rccBase + 0x1C

	gpioCRL = gpioaBase + 0x00

	timCR1   = tim2Base + 0x00
	timCCMR1 = tim2Base + 0x18
	timCCER  = tim2Base + 0x20
	timPSC   = tim2Base + 0x28
	timARR   = tim2Base + 0x2C
	timCCR1  = tim2Base + 0x34
)

// Clock enable bits
const (
	RCC_APB1ENR_TIM2EN = 1 << 0
	RCC_APB2ENR_IOPAEN = 1 << 2
)

// GPIOx_CRL pin 0 fields
const (
	GPIO_CRL_MODE0_Pos = 0
	GPIO_CRL_MODE0_Msk = 0x3 << GPIO_CRL_MODE0_Pos
	GPIO_CRL_CNF0_Pos  = 2
	GPIO_CRL_CNF0_Msk  = 0x3 << GPIO_CRL_CNF0_Pos

	// CNF 0b10 with MODE != 0: alternate function push-pull
	GPIO_CRL_CNF0_AF_PP = 0x2 << GPIO_CRL_CNF0_Pos
)

// Timer fields
const (
	TIM_CR1_CEN = 1 << 0

	TIM_CCMR1_OC1M_Pos = 4
	TIM_CCMR1_OC1M_Msk = 0x7 << TIM_CCMR1_OC1M_Pos

	// OC1M = 0b110: channel active while CNT < CCR1
	TIM_CCMR1_OC1M_PWM1 = 0x6 << TIM_CCMR1_OC1M_Pos

	TIM_CCER_CC1E = 1 << 0

	// PSC, ARR and CCRx are 16 bits wide on TIM2-TIM5
	TIM_MaxCount = 0xFFFF
)

// Reset values of the registers touched at startup
const (
	resetGPIOCRL = 0x44444444 // every pin floating input
	resetTIMARR  = 0x0000FFFF
)

// OutputSpeed is the MODE field encoding for an output pin; it selects the
// maximum drive slew rate.
type OutputSpeed uint32

const (
	Speed10MHz OutputSpeed = 0x1
	Speed2MHz  OutputSpeed = 0x2
	Speed50MHz OutputSpeed = 0x3
)

// String returns the speed as written in the reference manual
func (s OutputSpeed) String() string {
	switch s {
	case Speed10MHz:
		return "10MHz"
	case Speed2MHz:
		return "2MHz"
	case Speed50MHz:
		return "50MHz"
	default:
		return "invalid"
	}
}

// modeBits returns the MODE0 field value for the speed. An out-of-range
// speed falls back to 2 MHz so the pin always ends up an output.
func (s OutputSpeed) modeBits() uint32 {
	switch s {
	case Speed10MHz, Speed2MHz, Speed50MHz:
		return uint32(s) << GPIO_CRL_MODE0_Pos
	default:
		return uint32(Speed2MHz) << GPIO_CRL_MODE0_Pos
	}
}
