package runtime

import (
	"github.com/sambeau/numerobis/pkg/numerobis/errors"
)

// Append, Extend and Insert return the receiver so generated code can chain
// them; Pop returns the removed element. The list mutators are the only
// operations in the runtime that modify a value in place; the
// compiler never aliases a list across such calls.

// Append adds a value to the end of the list.
func Append(self, val Object) Object {
	l := self.(*List)
	l.Elements = append(l.Elements, val)
	return l
}

// Extend appends every element of other.
func Extend(self, other Object) Object {
	l := self.(*List)
	o := other.(*List)
	l.Elements = append(l.Elements, o.Elements...)
	return l
}

// Insert places a value before the normalized index; an index equal to the
// length appends. Out-of-range throws 901.
func Insert(self, index, val Object, loc *errors.Location) Object {
	l := self.(*List)
	i := indexValue(index)

	length := int64(len(l.Elements))
	if i != length {
		i = normalizeIndex(i, length)
		if i < 0 {
			errors.Throw(901, loc)
		}
	}

	l.Elements = append(l.Elements, nil)
	copy(l.Elements[i+1:], l.Elements[i:])
	l.Elements[i] = val
	return l
}

// Pop removes and returns the element at the normalized index; None as the
// index pops the last element. Out-of-range throws 901.
func Pop(self, index Object, loc *errors.Location) Object {
	l := self.(*List)

	i := int64(len(l.Elements)) - 1
	if _, none := index.(*None); !none && index != nil {
		i = indexValue(index)
	}

	i = normalizeIndex(i, int64(len(l.Elements)))
	if i < 0 {
		errors.Throw(901, loc)
	}

	val := l.Elements[i]
	l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)
	return val
}
