package source

import "github.com/chewxy/math32"

// rampLength matches the stored ECG trace so the two waveforms are
// interchangeable in playback tests.
const rampLength = 231

// ecgTrace is a single heartbeat sampled at 231 points, kept in raw units.
var ecgTrace = [rampLength]float64{
	76, 77, 78, 77, 79, 86, 81, 76, 84, 93, 85, 80,
	89, 95, 89, 85, 93, 98, 94, 88, 98, 105, 96, 91,
	99, 105, 101, 96, 102, 106, 101, 96, 100, 107, 101,
	94, 100, 104, 100, 91, 99, 103, 98, 91, 96, 105, 95,
	88, 95, 100, 94, 85, 93, 99, 92, 84, 91, 96, 87, 80,
	83, 92, 86, 78, 84, 89, 79, 73, 81, 83, 78, 70, 80, 82,
	79, 69, 80, 82, 81, 70, 75, 81, 77, 74, 79, 83, 82, 72,
	80, 87, 79, 76, 85, 95, 87, 81, 88, 93, 88, 84, 87, 94,
	86, 82, 85, 94, 85, 82, 85, 95, 86, 83, 92, 99, 91, 88,
	94, 98, 95, 90, 97, 105, 104, 94, 98, 114, 117, 124, 144,
	180, 210, 236, 253, 227, 171, 99, 49, 34, 29, 43, 69, 89,
	89, 90, 98, 107, 104, 98, 104, 110, 102, 98, 103, 111, 101,
	94, 103, 108, 102, 95, 97, 106, 100, 92, 101, 103, 100, 94, 98,
	103, 96, 90, 98, 103, 97, 90, 99, 104, 95, 90, 99, 104, 100, 93,
	100, 106, 101, 93, 101, 105, 103, 96, 105, 112, 105, 99, 103, 108,
	99, 96, 102, 106, 99, 90, 92, 100, 87, 80, 82, 88, 77, 69, 75, 79,
	74, 67, 71, 78, 72, 67, 73, 81, 77, 71, 75, 84, 79, 77, 77, 76, 76,
}

// ECGWaveform returns a copy of the stored ECG trace.
func ECGWaveform() []float64 {
	out := make([]float64, len(ecgTrace))
	copy(out, ecgTrace[:])
	return out
}

// RampWaveform returns the sequence 1..n.
func RampWaveform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// SineWaveform synthesizes one sine period of n samples: bias + amp*sin.
func SineWaveform(n int, amp, bias float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		phase := 2 * math32.Pi * float32(i) / float32(n)
		out[i] = bias + amp*float64(math32.Sin(phase))
	}
	return out
}
