// Package wire provides a canonical CBOR codec for unit trees and numeric
// values, so embeddings can snapshot compiled constants or ship them between
// the compiler and a running program.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/sambeau/numerobis/pkg/numerobis/runtime"
	"github.com/sambeau/numerobis/pkg/numerobis/units"
)

// cborEncMode uses canonical options for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// node kind tags on the wire
const (
	tagOne        = "one"
	tagScalar     = "num"
	tagIdentifier = "id"
	tagProduct    = "prod"
	tagSum        = "sum"
	tagPower      = "pow"
	tagNeg        = "neg"
	tagExpression = "expr"
)

// wireNode is the flattened tagged form of a unit tree node.
type wireNode struct {
	Kind     string     `cbor:"k"`
	Value    float64    `cbor:"v,omitempty"`
	Name     string     `cbor:"n,omitempty"`
	ID       uint16     `cbor:"i,omitempty"`
	Children []wireNode `cbor:"c,omitempty"`
}

// MarshalNode serializes a unit tree to CBOR bytes.
func MarshalNode(n units.Node) ([]byte, error) {
	w, err := toWire(n)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(w)
}

// UnmarshalNode deserializes a unit tree from CBOR bytes.
func UnmarshalNode(data []byte) (units.Node, error) {
	var w wireNode
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("wire: unmarshal node: %w", err)
	}
	return fromWire(&w)
}

func toWire(n units.Node) (wireNode, error) {
	switch n := n.(type) {
	case *units.One:
		return wireNode{Kind: tagOne}, nil

	case *units.Scalar:
		return wireNode{Kind: tagScalar, Value: n.Value}, nil

	case *units.Identifier:
		return wireNode{Kind: tagIdentifier, Name: n.Name, ID: n.ID}, nil

	case *units.Product:
		children, err := toWireChildren(n.Values)
		if err != nil {
			return wireNode{}, err
		}
		return wireNode{Kind: tagProduct, Children: children}, nil

	case *units.Sum:
		children, err := toWireChildren(n.Values)
		if err != nil {
			return wireNode{}, err
		}
		return wireNode{Kind: tagSum, Children: children}, nil

	case *units.Power:
		children, err := toWireChildren([]units.Node{n.Base, n.Exponent})
		if err != nil {
			return wireNode{}, err
		}
		return wireNode{Kind: tagPower, Children: children}, nil

	case *units.Neg:
		children, err := toWireChildren([]units.Node{n.Value})
		if err != nil {
			return wireNode{}, err
		}
		return wireNode{Kind: tagNeg, Children: children}, nil

	case *units.Expression:
		children, err := toWireChildren([]units.Node{n.Value})
		if err != nil {
			return wireNode{}, err
		}
		return wireNode{Kind: tagExpression, Children: children}, nil
	}
	return wireNode{}, fmt.Errorf("wire: unknown node %T", n)
}

func toWireChildren(nodes []units.Node) ([]wireNode, error) {
	out := make([]wireNode, 0, len(nodes))
	for _, n := range nodes {
		w, err := toWire(n)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func fromWire(w *wireNode) (units.Node, error) {
	switch w.Kind {
	case tagOne:
		return units.NewOne(), nil

	case tagScalar:
		return units.NewScalar(w.Value), nil

	case tagIdentifier:
		return units.NewIdentifier(w.Name, w.ID), nil

	case tagProduct, tagSum:
		children, err := fromWireChildren(w.Children)
		if err != nil {
			return nil, err
		}
		if w.Kind == tagProduct {
			return units.NewProduct(children...), nil
		}
		return units.NewSum(children...), nil

	case tagPower:
		if len(w.Children) != 2 {
			return nil, fmt.Errorf("wire: power node needs 2 children, has %d", len(w.Children))
		}
		base, err := fromWire(&w.Children[0])
		if err != nil {
			return nil, err
		}
		exp, err := fromWire(&w.Children[1])
		if err != nil {
			return nil, err
		}
		return units.NewPower(base, exp), nil

	case tagNeg, tagExpression:
		if len(w.Children) != 1 {
			return nil, fmt.Errorf("wire: %s node needs 1 child, has %d", w.Kind, len(w.Children))
		}
		child, err := fromWire(&w.Children[0])
		if err != nil {
			return nil, err
		}
		if w.Kind == tagNeg {
			return units.NewNeg(child), nil
		}
		return units.NewExpression(child), nil
	}
	return nil, fmt.Errorf("wire: unknown node kind %q", w.Kind)
}

func fromWireChildren(ws []wireNode) ([]units.Node, error) {
	out := make([]units.Node, 0, len(ws))
	for i := range ws {
		n, err := fromWire(&ws[i])
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// wireNumber is the flattened form of a boxed number.
type wireNumber struct {
	Double bool     `cbor:"d"`
	Int    int64    `cbor:"i,omitempty"`
	Float  float64  `cbor:"f,omitempty"`
	Unit   wireNode `cbor:"u"`
}

// MarshalNumber serializes a boxed number, unit tree included.
func MarshalNumber(n *runtime.Number) ([]byte, error) {
	u, err := toWire(n.Unit)
	if err != nil {
		return nil, err
	}
	w := wireNumber{Unit: u}
	if n.Kind == runtime.Double {
		w.Double = true
		w.Float = n.Flt
	} else {
		w.Int = n.Int
	}
	return cborEncMode.Marshal(w)
}

// UnmarshalNumber deserializes a boxed number.
func UnmarshalNumber(data []byte) (*runtime.Number, error) {
	var w wireNumber
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("wire: unmarshal number: %w", err)
	}
	unit, err := fromWire(&w.Unit)
	if err != nil {
		return nil, err
	}
	if w.Double {
		return runtime.NewFloat(w.Float, unit), nil
	}
	return runtime.NewInt(w.Int, unit), nil
}
