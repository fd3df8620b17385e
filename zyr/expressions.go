package zyr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sexp is one node of a parsed expression tree.
type Sexp interface {
	SexpString(ps *PrintState) string
}

type SexpSentinel int

// SexpNull is the one and only empty list. Every `()` the
// reader produces is this value; it is never mutated.
const (
	SexpNull SexpSentinel = iota
)

func (sent SexpSentinel) SexpString(ps *PrintState) string {
	if sent == SexpNull {
		return "()"
	}
	return fmt.Sprintf("SexpSentinel%d", int(sent))
}

type SexpPair struct {
	Head Sexp
	Tail Sexp
}

func Cons(a Sexp, b Sexp) *SexpPair {
	return &SexpPair{a, b}
}

func (pair *SexpPair) SexpString(ps *PrintState) string {
	var sb strings.Builder
	sb.WriteByte('(')

	var expr Sexp = pair
	first := true
	for {
		p, isPair := expr.(*SexpPair)
		if !isPair {
			break
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(p.Head.SexpString(ps.AddIndent(1)))
		expr = p.Tail
	}

	if expr != SexpNull {
		// not produced by the reader, but keep the printer total
		sb.WriteString(" \\ ")
		sb.WriteString(expr.SexpString(ps))
	}
	sb.WriteByte(')')
	return sb.String()
}

type SexpInt struct {
	Val int64
}

func (i *SexpInt) SexpString(ps *PrintState) string {
	return strconv.FormatInt(i.Val, 10)
}

type SexpSymbol struct {
	name   string
	number int
}

func (sym *SexpSymbol) SexpString(ps *PrintState) string {
	return sym.name
}

func (sym *SexpSymbol) Name() string {
	return sym.name
}

func (sym *SexpSymbol) Number() int {
	return sym.number
}

var NotAList = errors.New("not a list")

func IsList(expr Sexp) bool {
	if expr == SexpNull {
		return true
	}
	switch list := expr.(type) {
	case *SexpPair:
		return IsList(list.Tail)
	}
	return false
}

func IsEmptyList(expr Sexp) bool {
	return expr == SexpNull
}

func ListToArray(expr Sexp) ([]Sexp, error) {
	if !IsList(expr) {
		return nil, NotAList
	}
	arr := make([]Sexp, 0)

	for expr != SexpNull {
		list := expr.(*SexpPair)
		arr = append(arr, list.Head)
		expr = list.Tail
	}

	return arr, nil
}

// MakeList builds the list back to front so that long
// argument slices don't recurse.
func MakeList(expressions []Sexp) Sexp {
	var list Sexp = SexpNull
	for i := len(expressions) - 1; i >= 0; i-- {
		list = Cons(expressions[i], list)
	}
	return list
}

func ListLen(expr Sexp) (int, error) {
	sz := 0
	var list *SexpPair
	ok := false
	for expr != SexpNull {
		list, ok = expr.(*SexpPair)
		if !ok {
			return 0, fmt.Errorf("ListLen() called on non-list")
		}
		sz++
		expr = list.Tail
	}
	return sz, nil
}

// Equal reports structural equality. Symbols compare by name,
// so trees from different reader sessions can be compared.
func Equal(a, b Sexp) bool {
	for {
		switch x := a.(type) {
		case SexpSentinel:
			y, ok := b.(SexpSentinel)
			return ok && x == y
		case *SexpInt:
			y, ok := b.(*SexpInt)
			return ok && x.Val == y.Val
		case *SexpSymbol:
			y, ok := b.(*SexpSymbol)
			return ok && x.name == y.name
		case *SexpPair:
			y, ok := b.(*SexpPair)
			if !ok || !Equal(x.Head, y.Head) {
				return false
			}
			a, b = x.Tail, y.Tail
			continue
		}
		return false
	}
}
