package runtime

import (
	"github.com/sambeau/numerobis/pkg/numerobis/units"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatLocalized renders a number's reduced scalar with the grouping and
// decimal conventions of a BCP 47 locale tag, followed by the printed unit.
// Unknown tags fall back to English formatting.
func FormatLocalized(n *Number, tag string) string {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.English
	}

	value := units.Reduce(n.asFloat(), n.Unit)

	p := message.NewPrinter(lang)
	out := p.Sprint(number.Decimal(value))

	if unit := units.Print(n.Unit); unit != "" {
		out += " " + unit
	}
	return out
}

// Format is the extern surface of FormatLocalized: format(value, locale).
// A missing locale argument formats for English.
func Format(args ...Object) Object {
	if len(args) == 0 {
		return &Str{}
	}

	n, ok := args[0].(*Number)
	if !ok {
		return Stringify(args[0])
	}

	tag := "en"
	if len(args) > 1 {
		if s, ok := args[1].(*Str); ok {
			tag = s.Value
		}
	}
	return &Str{Value: FormatLocalized(n, tag)}
}
