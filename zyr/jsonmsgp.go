package zyr

import (
	"bytes"
	"fmt"
	"math"
	"reflect"

	"github.com/ugorji/go/codec"
)

/*
 Conversion map

 Go interface{} values <--(1)--> sexp
        ^
        |
       (2)
        |
        V
  json / msgpack

(1) SexpToGo() and GoToSexp() herein: integers become int64,
    symbols become string, lists become []interface{}.
(2) provided by ugorji/go/codec.

The byte-level msgpack codec in msgp.go produces the same shape
without the reflection round trip.
*/

type msgpackHelper struct {
	initialized bool
	mh          codec.MsgpackHandle
	jh          codec.JsonHandle
}

func (m *msgpackHelper) init() {
	if m.initialized {
		return
	}

	m.mh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.mh.RawToString = true
	m.mh.WriteExt = true
	m.mh.SignedInteger = true
	m.mh.Canonical = true

	m.jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.jh.SignedInteger = true
	m.jh.Canonical = true

	m.initialized = true
}

var msgpHelper msgpackHelper

func init() {
	msgpHelper.init()
}

// sexp -> go
func SexpToGo(exp Sexp) interface{} {
	switch e := exp.(type) {
	case *SexpInt:
		return e.Val
	case *SexpSymbol:
		return e.name
	case SexpSentinel:
		return []interface{}{}
	case *SexpPair:
		arr := []interface{}{}
		var expr Sexp = e
		for expr != SexpNull {
			pair, ok := expr.(*SexpPair)
			if !ok {
				break
			}
			arr = append(arr, SexpToGo(pair.Head))
			expr = pair.Tail
		}
		return arr
	}
	return nil
}

// go -> sexp. Strings become symbols interned in symtab; a nil
// symtab gets a fresh one.
func GoToSexp(iface interface{}, symtab *SymbolTable) (Sexp, error) {
	if symtab == nil {
		symtab = NewSymbolTable()
	}
	switch v := iface.(type) {
	case int64:
		return &SexpInt{Val: v}, nil
	case int:
		return &SexpInt{Val: int64(v)}, nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("GoToSexp: integer %d out of range", v)
		}
		return &SexpInt{Val: int64(v)}, nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return nil, fmt.Errorf("GoToSexp: %v is not an integer", v)
		}
		return &SexpInt{Val: int64(v)}, nil
	case string:
		if v == "" {
			return nil, fmt.Errorf("GoToSexp: empty symbol name")
		}
		return symtab.MakeSymbol(v), nil
	case []byte:
		return GoToSexp(string(v), symtab)
	case []interface{}:
		arr := make([]Sexp, 0, len(v))
		for _, elem := range v {
			x, err := GoToSexp(elem, symtab)
			if err != nil {
				return nil, err
			}
			arr = append(arr, x)
		}
		return MakeList(arr), nil
	}
	return nil, fmt.Errorf("GoToSexp: unsupported type %T", iface)
}

// sexp -> json
func SexpToJson(exp Sexp) string {
	return string(GoToJson(SexpToGo(exp)))
}

// json -> sexp
func JsonToSexp(json []byte, symtab *SymbolTable) (Sexp, error) {
	iface, err := JsonToGo(json)
	if err != nil {
		return nil, err
	}
	return GoToSexp(iface, symtab)
}

// json -> go
func JsonToGo(json []byte) (interface{}, error) {
	var iface interface{}

	decoder := codec.NewDecoderBytes(json, &msgpHelper.jh)
	err := decoder.Decode(&iface)
	if err != nil {
		return nil, err
	}
	VPrintf("decoded type : %T", iface)
	return iface, nil
}

// go -> json
func GoToJson(iface interface{}) []byte {
	var w bytes.Buffer
	encoder := codec.NewEncoder(&w, &msgpHelper.jh)
	err := encoder.Encode(&iface)
	panicOn(err)
	return w.Bytes()
}

// sexp -> go -> msgpack
func SexpToMsgpack(exp Sexp) ([]byte, error) {
	return GoToMsgpack(SexpToGo(exp))
}

func GoToMsgpack(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	enc := codec.NewEncoder(&w, &msgpHelper.mh)
	err := enc.Encode(&iface)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// msgpack -> sexp
func MsgpackToSexp(msgp []byte, symtab *SymbolTable) (Sexp, error) {
	iface, err := MsgpackToGo(msgp)
	if err != nil {
		return nil, fmt.Errorf("MsgpackToSexp failed at MsgpackToGo step: '%s'", err)
	}
	sexp, err := GoToSexp(iface, symtab)
	if err != nil {
		return nil, fmt.Errorf("MsgpackToSexp failed at GoToSexp step: '%s'", err)
	}
	return sexp, nil
}

// msgpack -> go
func MsgpackToGo(msgp []byte) (interface{}, error) {
	var iface interface{}
	dec := codec.NewDecoderBytes(msgp, &msgpHelper.mh)
	err := dec.Decode(&iface)
	if err != nil {
		return nil, err
	}
	return iface, nil
}
