//go:build tinygo

package core

import (
	"runtime/volatile"
	"unsafe"
)

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// HardwareRegisters returns the register file bound to the STM32F103
// memory-mapped peripherals
func HardwareRegisters() *RegisterFile {
	return &RegisterFile{
		RCC: RCCRegisters{
			APB2ENR: reg32(rccAPB2ENR),
			APB1ENR: reg32(rccAPB1ENR),
		},
		GPIOA: GPIORegisters{
			CRL: reg32(gpioCRL),
		},
		TIM2: TimerRegisters{
			CR1:   reg32(timCR1),
			CCMR1: reg32(timCCMR1),
			CCER:  reg32(timCCER),
			PSC:   reg32(timPSC),
			ARR:   reg32(timARR),
			CCR1:  reg32(timCCR1),
		},
	}
}

// Idle spins forever. The timer keeps generating the waveform on its own.
func Idle() {
	for {
	}
}
