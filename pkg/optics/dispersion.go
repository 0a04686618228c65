package optics

// DispersionB is the two-term Cauchy B constant (µm²) used for all
// dispersive glass in the bench.
const DispersionB = 0.00420

// ReferenceWavelength is the sodium D line (µm) at which base indices are
// quoted.
const ReferenceWavelength = 0.589

// CauchyIndex returns the dispersion law n(λ) = A + B/λ² with A calibrated
// so that n(ReferenceWavelength) equals baseIndex.
func CauchyIndex(baseIndex float64) IndexFunc {
	a := baseIndex - DispersionB/(ReferenceWavelength*ReferenceWavelength)
	return func(wavelength float64) float64 {
		return a + DispersionB/(wavelength*wavelength)
	}
}
