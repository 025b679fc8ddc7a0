package runtime

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"sync"

	"github.com/sambeau/numerobis/pkg/numerobis/errors"
	"github.com/sambeau/numerobis/pkg/numerobis/units"
)

// Identifier ids for the package test fixture.
const (
	idMetre uint16 = iota
	idSecond
	idKilogram
	idKelvin
	idCelsius
	idFahrenheit
	idDBm
	idKilometre
)

const dBmRef = 6e-5

// testTables mirrors what the compiler would generate for a small catalog:
// base units are identities, kilometres scale, Celsius and Fahrenheit are
// affine over kelvin, dBm is decibel-logarithmic.
type testTables struct{}

func (testTables) Base(id uint16, x float64) float64 {
	switch id {
	case idCelsius, idFahrenheit, idDBm:
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
	case idFahrenheit:
		return (x-32)*5/9 + 273.15
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
	case idFahrenheit:
		return (x-273.15)*9/5 + 32
	case idDBm:
		return dBmRef * math.Pow(10, x/10)
	default:
		return x
	}
}

func (testTables) Logarithmic(id uint16) bool {
	switch id {
	case idCelsius, idFahrenheit, idDBm:
		return true
	}
	return false
}

var installOnce sync.Once

func installTestTables() {
	installOnce.Do(func() { units.Install(testTables{}) })
}

func metre() units.Node      { return units.NewIdentifier("m", idMetre) }
func second() units.Node     { return units.NewIdentifier("s", idSecond) }
func kelvin() units.Node     { return units.NewIdentifier("K", idKelvin) }
func celsius() units.Node    { return units.NewIdentifier("°C", idCelsius) }
func fahrenheit() units.Node { return units.NewIdentifier("°F", idFahrenheit) }
func dBm() units.Node        { return units.NewIdentifier("dBm", idDBm) }

// throwSentinel lets tests observe Throw without the process dying: the
// stubbed exit panics, the helper recovers and reports the code.
type throwSentinel struct{}

var throwCodeRe = regexp.MustCompile(`\[E(\d+)\]`)

// catchThrow runs fn with diagnostics captured and returns the thrown error
// code, or -1 when fn completes without throwing.
func catchThrow(fn func()) int {
	var buf bytes.Buffer
	prevOut := errors.SetOutput(&buf)
	defer errors.SetOutput(prevOut)

	prevExit := errors.SetExit(func(int) { panic(throwSentinel{}) })
	defer errors.SetExit(prevExit)

	thrown := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(throwSentinel); !ok {
					panic(r)
				}
				thrown = true
			}
		}()
		fn()
	}()

	if !thrown {
		return -1
	}
	m := throwCodeRe.FindStringSubmatch(buf.String())
	if m == nil {
		return -1
	}
	code, _ := strconv.Atoi(m[1])
	return code
}
