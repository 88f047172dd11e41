//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/hcsr04"
)

var (
	uart   = machine.UART0
	sensor hcsr04.Device

	// Button edge flags set from the pin interrupts, drained by the main loop
	btn1Fired bool
	btn2Fired bool

	// Debounce timestamps
	lastBtn1 time.Time
	lastBtn2 time.Time

	// Timing
	lastMeasure time.Time
)

func main() {
	// Configure buttons with pullups, pressed edge is falling
	PIN_BUTTON1.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	PIN_BUTTON2.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	PIN_BUTTON1.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		now := time.Now()
		if now.Sub(lastBtn1) < time.Duration(DEBOUNCE_MS)*time.Millisecond {
			return
		}
		lastBtn1 = now
		btn1Fired = true
	})
	PIN_BUTTON2.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		now := time.Now()
		if now.Sub(lastBtn2) < time.Duration(DEBOUNCE_MS)*time.Millisecond {
			return
		}
		lastBtn2 = now
		btn2Fired = true
	})

	// Configure UART for the measurement stream and button events
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	// Configure the ultrasonic rangefinder
	sensor = hcsr04.New(PIN_TRIGGER, PIN_ECHO)
	sensor.Configure()

	// Initialize timing
	lastMeasure = time.Now()

	// Main loop
	for {
		now := time.Now()

		// Report pending button presses
		if btn1Fired {
			btn1Fired = false
			print("B,1\n")
		}
		if btn2Fired {
			btn2Fired = false
			print("B,2\n")
		}

		// Ping the sensor; closer than MEASURE_INTERVAL_MS the echo of the
		// previous ping can still be in flight and corrupt the reading
		if now.Sub(lastMeasure) >= time.Duration(MEASURE_INTERVAL_MS)*time.Millisecond {
			outputMeasurement()
			lastMeasure = now
		}

		// Small delay to prevent tight loop
		time.Sleep(time.Millisecond)
	}
}

func outputMeasurement() {
	millimeters := sensor.ReadDistance()

	// Get timestamp in unix microseconds
	now := time.Now()
	timestampMicros := now.UnixNano() / 1000

	// Output format: "unix_micros,millimeters\n"
	// Example: "1234567890123,435\n"
	print(timestampMicros)
	print(",")
	print(millimeters)
	print("\n")
}
