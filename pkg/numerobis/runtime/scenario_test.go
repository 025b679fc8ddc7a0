package runtime

import (
	"testing"

	"github.com/sambeau/numerobis/pkg/numerobis/units"
)

// End-to-end behaviors of whole expressions, written the way the compiler
// lowers them: constructor calls feeding the dispatchers, echoed to a
// captured writer.
func TestScenarios(t *testing.T) {
	installTestTables()

	tests := []struct {
		name string
		expr func() Object
		want string
	}{
		{
			name: "1m + 2m",
			expr: func() Object {
				return Add(NewInt(1, metre()), NewInt(2, metre()))
			},
			want: "3 m\n",
		},
		{
			name: "(1 m) / (1 s)",
			expr: func() Object {
				return Div(NewInt(1, metre()), NewInt(1, second()))
			},
			want: "1 m/s\n",
		},
		{
			name: "2 * 60 dBm scales the raw scalar",
			expr: func() Object {
				return Mul(NewInt(2, nil), NewInt(60, dBm()))
			},
			want: "63.0103 dBm\n",
		},
		{
			name: "60 dBm |+| 60 dBm adds in decibel space",
			expr: func() Object {
				return DeltaAdd(NewInt(60, dBm()), NewInt(60, dBm()))
			},
			want: "120 dBm\n",
		},
		{
			name: "0 °C -> K",
			expr: func() Object {
				return Convert(NewFloat(0, celsius()), kelvin())
			},
			want: "273.15 K\n",
		},
		{
			name: "[1,2,3][-1]",
			expr: func() Object {
				list := ListOf(NewInt(1, nil), NewInt(2, nil), NewInt(3, nil))
				return GetItem(list, NewInt(-1, nil), nil)
			},
			want: "3\n",
		},
		{
			// cancellation leaves the scalar one, which still prints
			name: "m times m-inverse cancels",
			expr: func() Object {
				inv := Div(NewInt(1, nil), NewInt(1, metre()))
				return Mul(NewInt(4, metre()), inv.(*Number))
			},
			want: "4 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captureEcho(func() { Echo(tt.expr()) })
			if got != tt.want {
				t.Errorf("echoed %q, want %q", got, tt.want)
			}
		})
	}
}

// The power scenario needs structural assertions, not output.
func TestScenarioPowerUnit(t *testing.T) {
	installTestTables()

	n := asNumber(t, Pow(NewInt(2, metre()), NewInt(3, nil)))
	if n.Int != 8 {
		t.Errorf("value = %d, want 8", n.Int)
	}
	want := units.NewPower(metre(), units.NewScalar(3))
	if !units.Equal(n.Unit, want) {
		t.Errorf("unit = %s, want m^3", units.Print(n.Unit))
	}
}
