package units

import (
	"math"
	"sync"
)

// Identifier ids used across the package tests.
const (
	idMetre uint16 = iota
	idSecond
	idKilogram
	idKelvin
	idCelsius
	idDBm
	idKilometre
)

// testTables is a hand-rolled stand-in for the compiler-generated
// evaluation tables: metres/seconds/kilograms/kelvin are base units,
// kilometres scale by 1000, Celsius is affine over kelvin, and dBm is
// decibel-logarithmic.
type testTables struct{}

const dBmRef = 6e-5

func (testTables) Base(id uint16, x float64) float64 {
	switch id {
	case idCelsius, idDBm:
		return 1
	default:
		return x
	}
}

func (testTables) Inverted(id uint16, x float64) float64 {
	switch id {
	case idKilometre:
		return 1000 * x
	case idCelsius:
		return x + 273.15
	case idDBm:
		return 10 * math.Log10(x/dBmRef)
	default:
		return x
	}
}

func (testTables) Normal(id uint16, x float64) float64 {
	switch id {
	case idKilometre:
		return x / 1000
	case idCelsius:
		return x - 273.15
	case idDBm:
		return dBmRef * math.Pow(10, x/10)
	default:
		return x
	}
}

func (testTables) Logarithmic(id uint16) bool {
	return id == idCelsius || id == idDBm
}

var installOnce sync.Once

func installTestTables() {
	installOnce.Do(func() { Install(testTables{}) })
}

func metre() *Identifier     { return NewIdentifier("m", idMetre) }
func second() *Identifier    { return NewIdentifier("s", idSecond) }
func kilogram() *Identifier  { return NewIdentifier("kg", idKilogram) }
func kelvin() *Identifier    { return NewIdentifier("K", idKelvin) }
func celsius() *Identifier   { return NewIdentifier("°C", idCelsius) }
func dBm() *Identifier       { return NewIdentifier("dBm", idDBm) }
func kilometre() *Identifier { return NewIdentifier("km", idKilometre) }
