package zyr

import (
	"strings"
)

// SexpString renders expr on one line in the form the reader
// accepts, so ReadString(SexpString(e)) is structurally e.
func SexpString(expr Sexp) string {
	if expr == nil {
		return ""
	}
	return expr.SexpString(nil)
}

// PrettyLines renders expr across several lines, one list element
// per line once a list no longer fits in width columns. Every
// line but the last ends inside an open list, so feeding the lines
// to a Reader one at a time exercises the continuation prompt.
func PrettyLines(expr Sexp, width int) []string {
	var lines []string
	prettyLevel(expr, NewPrintState(), width, &lines, "")
	return lines
}

func Pretty(expr Sexp, width int) string {
	return strings.Join(PrettyLines(expr, width), "\n")
}

func prettyLevel(expr Sexp, ps *PrintState, width int, lines *[]string, closing string) {
	indent := strings.Repeat("  ", ps.GetIndent())
	flat := expr.SexpString(ps)
	pair, isPair := expr.(*SexpPair)
	if !isPair || len(indent)+len(flat)+len(closing) <= width {
		*lines = append(*lines, indent+flat+closing)
		return
	}

	arr, err := ListToArray(pair)
	if err != nil {
		*lines = append(*lines, indent+flat+closing)
		return
	}
	*lines = append(*lines, indent+"(")
	for i, elem := range arr {
		tail := ""
		if i == len(arr)-1 {
			tail = ")" + closing
		}
		prettyLevel(elem, ps.AddIndent(1), width, lines, tail)
	}
}
