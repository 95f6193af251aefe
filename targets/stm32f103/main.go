//go:build stm32f103

// Firmware entry for STM32F103 boards (Blue Pill and similar).
// TIM2 channel 1 drives PA0 at 1 Hz, 50% duty. Attach an LED through a
// 1k resistor between PA0 and ground.
package main

import (
	"stm32pwm/core"
)

func main() {
	core.ConfigurePWM(core.HardwareRegisters(), core.FirmwarePWMConfig())

	// Nothing left for software to do
	core.Idle()
}
