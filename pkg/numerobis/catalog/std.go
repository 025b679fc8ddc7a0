package catalog

// Std returns the built-in catalog: SI base units, a few scaled lengths and
// masses, the two temperature scales over kelvin, and decibel-milliwatts.
// The dBm anchor is calibrated so a 60 dBm literal reads back as 60.
func Std() *Catalog {
	f := func(v float64) *float64 { return &v }

	c, err := New([]Entry{
		{Name: "m"},
		{Name: "s"},
		{Name: "kg"},
		{Name: "K"},
		{Name: "A"},
		{Name: "mol"},
		{Name: "cd"},
		{Name: "km", Factor: f(1000)},
		{Name: "cm", Factor: f(0.01)},
		{Name: "mm", Factor: f(0.001)},
		{Name: "g", Factor: f(0.001)},
		{Name: "min", Factor: f(60)},
		{Name: "h", Factor: f(3600)},
		{Name: "°C", Offset: f(273.15)},
		{Name: "°F", Scale: f(5.0 / 9.0), Offset: f(273.15 - 32*5.0/9.0)},
		{Name: "dBm", Log10Ref: f(6e-5)},
	})
	if err != nil {
		panic(err)
	}
	return c
}
