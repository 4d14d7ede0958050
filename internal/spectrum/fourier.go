package spectrum

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FourierAnalyzer is an FFT-based Analyzer with one plan built at
// construction for a fixed window size N. Callers must always pass
// exactly N samples; a shorter or longer slice is a programming error.
//
// Grounded on original_source/wavetrx/src/audio/spectrum.rs's
// FourierMagnitude, which plans a forward FFT once via rustfft's
// FftPlanner. Here the plan is gonum's CmplxFFT, the direct analogue for
// a full N-point complex DFT.
type FourierAnalyzer struct {
	fft        *fourier.CmplxFFT
	windowSize int
	sampleRate int
}

// NewFourierAnalyzer builds an analyzer for windows of windowSize samples
// at the given sample rate.
func NewFourierAnalyzer(windowSize, sampleRate int) *FourierAnalyzer {
	return &FourierAnalyzer{
		fft:        fourier.NewCmplxFFT(windowSize),
		windowSize: windowSize,
		sampleRate: sampleRate,
	}
}

// GetMagnitude implements Analyzer. samples must have exactly the
// analyzer's window size; the input slice is never mutated.
func (a *FourierAnalyzer) GetMagnitude(samples []float32, targetFreq float64) float64 {
	buf := make([]complex128, a.windowSize)
	for i, s := range samples {
		buf[i] = complex(float64(s), 0)
	}

	coeffs := a.fft.Coefficients(nil, buf)

	k := a.GetFrequencyBin(targetFreq)
	normFactor := 2.0 / float64(a.windowSize)
	amplitude := cmplx.Abs(coeffs[k]) * normFactor
	return magnitudeDB(amplitude)
}

// GetFrequencyBin implements Analyzer.
func (a *FourierAnalyzer) GetFrequencyBin(targetFreq float64) int {
	return frequencyBin(a.sampleRate, a.windowSize, targetFreq)
}
