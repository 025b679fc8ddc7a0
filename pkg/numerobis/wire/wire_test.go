package wire

import (
	"bytes"
	"testing"

	"github.com/sambeau/numerobis/pkg/numerobis/runtime"
	"github.com/sambeau/numerobis/pkg/numerobis/units"
)

func TestNodeRoundTrip(t *testing.T) {
	m := units.NewIdentifier("m", 0)
	s := units.NewIdentifier("s", 1)

	trees := []struct {
		name string
		node units.Node
	}{
		{"one", units.NewOne()},
		{"scalar", units.NewScalar(273.15)},
		{"identifier", m},
		{"velocity", units.NewProduct(m, units.NewPower(s, units.NewScalar(-1)))},
		{"affine", units.NewSum(units.NewIdentifier("K", 3), units.NewScalar(273.15))},
		{"negation", units.NewNeg(m)},
		{"grouping", units.NewExpression(units.NewPower(m, units.NewNeg(s)))},
		{"empty product", units.NewProduct()},
	}

	for _, tt := range trees {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalNode(tt.node)
			if err != nil {
				t.Fatalf("MarshalNode: %v", err)
			}
			got, err := UnmarshalNode(data)
			if err != nil {
				t.Fatalf("UnmarshalNode: %v", err)
			}
			if !units.Equal(got, tt.node) {
				t.Errorf("round trip changed the tree: %s -> %s",
					units.Print(tt.node), units.Print(got))
			}
		})
	}
}

func TestCanonicalEncoding(t *testing.T) {
	n := units.NewProduct(
		units.NewIdentifier("kg", 2),
		units.NewPower(units.NewIdentifier("s", 1), units.NewScalar(-2)),
	)

	a, err := MarshalNode(n)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalNode(n)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("encoding is not deterministic")
	}
}

func TestNumberRoundTrip(t *testing.T) {
	m := units.NewIdentifier("m", 0)

	tests := []struct {
		name string
		n    *runtime.Number
	}{
		{"int with unit", runtime.NewInt(42, m)},
		{"negative int", runtime.NewInt(-7, nil)},
		{"float", runtime.NewFloat(9.81, units.NewProduct(m, units.NewPower(units.NewIdentifier("s", 1), units.NewScalar(-2))))},
		{"zero float", runtime.NewFloat(0, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalNumber(tt.n)
			if err != nil {
				t.Fatalf("MarshalNumber: %v", err)
			}
			got, err := UnmarshalNumber(data)
			if err != nil {
				t.Fatalf("UnmarshalNumber: %v", err)
			}
			if got.Kind != tt.n.Kind || got.Int != tt.n.Int || got.Flt != tt.n.Flt {
				t.Errorf("round trip changed the value: %+v -> %+v", tt.n, got)
			}
			if !units.Equal(got.Unit, tt.n.Unit) {
				t.Errorf("round trip changed the unit")
			}
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	if _, err := UnmarshalNode([]byte{0xff}); err == nil {
		t.Errorf("garbage bytes should fail")
	}

	// a power node with a missing child is structurally invalid
	bad, err := cborEncMode.Marshal(wireNode{Kind: tagPower, Children: []wireNode{{Kind: tagOne}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := UnmarshalNode(bad); err == nil {
		t.Errorf("power with one child should fail")
	}

	unknown, err := cborEncMode.Marshal(wireNode{Kind: "mystery"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := UnmarshalNode(unknown); err == nil {
		t.Errorf("unknown kind should fail")
	}
}
