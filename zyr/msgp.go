package zyr

import (
	"fmt"
	"math"

	"github.com/tinylib/msgp/msgp"
)

// Byte-level msgpack for reader trees, written against the
// tinylib/msgp append/read primitives:
//
//   integer -> msgpack int
//   symbol  -> msgpack str
//   list    -> msgpack array of its elements; () is the empty array

// AppendSexp appends the msgpack encoding of expr to b.
func AppendSexp(b []byte, expr Sexp) ([]byte, error) {
	switch e := expr.(type) {
	case *SexpInt:
		return msgp.AppendInt64(b, e.Val), nil
	case *SexpSymbol:
		return msgp.AppendString(b, e.name), nil
	case SexpSentinel:
		return msgp.AppendArrayHeader(b, 0), nil
	case *SexpPair:
		arr, err := ListToArray(e)
		if err != nil {
			return b, err
		}
		b = msgp.AppendArrayHeader(b, uint32(len(arr)))
		for _, elem := range arr {
			b, err = AppendSexp(b, elem)
			if err != nil {
				return b, err
			}
		}
		return b, nil
	}
	return b, fmt.Errorf("AppendSexp: cannot encode %T", expr)
}

// ReadSexpBytes decodes one tree from the front of b and returns
// the remaining bytes.
func ReadSexpBytes(b []byte, symtab *SymbolTable) (Sexp, []byte, error) {
	if symtab == nil {
		symtab = NewSymbolTable()
	}
	switch msgp.NextType(b) {
	case msgp.IntType:
		i, o, err := msgp.ReadInt64Bytes(b)
		if err != nil {
			return nil, b, err
		}
		return &SexpInt{Val: i}, o, nil

	case msgp.UintType:
		u, o, err := msgp.ReadUint64Bytes(b)
		if err != nil {
			return nil, b, err
		}
		if u > math.MaxInt64 {
			return nil, b, fmt.Errorf("ReadSexpBytes: integer %d out of range", u)
		}
		return &SexpInt{Val: int64(u)}, o, nil

	case msgp.StrType:
		s, o, err := msgp.ReadStringBytes(b)
		if err != nil {
			return nil, b, err
		}
		if s == "" {
			return nil, b, fmt.Errorf("ReadSexpBytes: empty symbol name")
		}
		return symtab.MakeSymbol(s), o, nil

	case msgp.ArrayType:
		sz, o, err := msgp.ReadArrayHeaderBytes(b)
		if err != nil {
			return nil, b, err
		}
		arr := make([]Sexp, 0, sz)
		for i := uint32(0); i < sz; i++ {
			var elem Sexp
			elem, o, err = ReadSexpBytes(o, symtab)
			if err != nil {
				return nil, b, err
			}
			arr = append(arr, elem)
		}
		return MakeList(arr), o, nil
	}
	return nil, b, fmt.Errorf("ReadSexpBytes: unexpected msgpack type %v", msgp.NextType(b))
}

// Form wraps a tree so it satisfies msgp.Marshaler and
// msgp.Unmarshaler.
type Form struct {
	Expr   Sexp
	Symtab *SymbolTable
}

func (f *Form) MarshalMsg(b []byte) ([]byte, error) {
	return AppendSexp(b, f.Expr)
}

func (f *Form) UnmarshalMsg(b []byte) ([]byte, error) {
	expr, o, err := ReadSexpBytes(b, f.Symtab)
	if err != nil {
		return b, err
	}
	f.Expr = expr
	return o, nil
}

var (
	_ msgp.Marshaler   = &Form{}
	_ msgp.Unmarshaler = &Form{}
)
