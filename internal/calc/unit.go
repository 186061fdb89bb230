package calc

// WeightUnit identifies the measurement system for weights and carries the
// unit-specific gym constants (plate denominations, rounding increments,
// standard barbell weight).
type WeightUnit string

const (
	Pounds    WeightUnit = "lb"
	Kilograms WeightUnit = "kg"
)

var (
	poundPlates    = []float64{45, 35, 25, 10, 5, 2.5}
	kilogramPlates = []float64{25, 20, 15, 10, 5, 2.5, 1.25}
)

// PlateDenominations returns the standard plate sizes for the unit,
// largest first.
func (u WeightUnit) PlateDenominations() []float64 {
	if u == Kilograms {
		return kilogramPlates
	}
	return poundPlates
}

// DefaultIncrement is the coarse rounding increment (5 lb / 2.5 kg).
func (u WeightUnit) DefaultIncrement() float64 {
	if u == Kilograms {
		return 2.5
	}
	return 5
}

// FineIncrement is the fine rounding increment (2.5 lb / 1.25 kg) for gyms
// with fractional plates.
func (u WeightUnit) FineIncrement() float64 {
	if u == Kilograms {
		return 1.25
	}
	return 2.5
}

// BarWeight is the standard barbell weight (45 lb / 20 kg).
func (u WeightUnit) BarWeight() float64 {
	if u == Kilograms {
		return 20
	}
	return 45
}
