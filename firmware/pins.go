//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	MEASURE_INTERVAL_MS = 60 // HC-SR04 needs >= 60ms between pings
	DEBOUNCE_MS         = 25 // Minimum gap between reported button edges

	// HC-SR04 pins
	PIN_TRIGGER = machine.D2
	PIN_ECHO    = machine.D3

	// Buttons (active low, internal pullup)
	PIN_BUTTON1 = machine.D7 // measure on/off
	PIN_BUTTON2 = machine.D8 // hold

	// Serial configuration
	// Format "unix_micros,millimeters\n", e.g. "1234567890123456,4350\n"
	// = ~22 bytes max per line at ~16 lines/sec, well within 115200 baud.
	UART_BAUD_RATE = 115200
)
