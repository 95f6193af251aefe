// pwmplan previews the register writes the firmware makes at startup.
// It runs the same configuration sequence against simulated STM32F103
// registers and prints the result.
package main

import (
	"log"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pwmplan: ")

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
