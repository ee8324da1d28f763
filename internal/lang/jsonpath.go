package lang

import "github.com/ohler55/ojg/jp"

// JSONPath renders the path as an equivalent JSONPath expression. Only
// paths made of literal keys and wildcards have one; NodeName extraction,
// positional InnerNode selection and context tokens do not.
func (p Path) JSONPath() (jp.Expr, bool) {
	if p.nodeName {
		return nil, false
	}
	x := jp.R()
	for _, s := range p.segs {
		switch s.Kind {
		case Literal:
			x = x.C(s.Key)
		case Wildcard:
			x = x.W()
		default:
			return nil, false
		}
	}
	return x, true
}
