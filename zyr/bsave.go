package zyr

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/glycerine/greenpack/msgp"
)

// A transcript is a file of msgpack-encoded forms, one after the
// other, in the same shape AppendSexp produces. It is written and
// read as a stream with the greenpack msgp Writer and Reader.

func (f *Form) EncodeMsg(w *msgp.Writer) error {
	return encodeSexp(w, f.Expr)
}

func (f *Form) DecodeMsg(r *msgp.Reader) error {
	if f.Symtab == nil {
		f.Symtab = NewSymbolTable()
	}
	expr, err := decodeSexp(r, f.Symtab)
	if err != nil {
		return err
	}
	f.Expr = expr
	return nil
}

var (
	_ msgp.Encodable = &Form{}
	_ msgp.Decodable = &Form{}
)

func encodeSexp(w *msgp.Writer, expr Sexp) error {
	switch e := expr.(type) {
	case *SexpInt:
		return w.WriteInt64(e.Val)
	case *SexpSymbol:
		return w.WriteString(e.name)
	case SexpSentinel:
		return w.WriteArrayHeader(0)
	case *SexpPair:
		arr, err := ListToArray(e)
		if err != nil {
			return err
		}
		if err := w.WriteArrayHeader(uint32(len(arr))); err != nil {
			return err
		}
		for _, elem := range arr {
			if err := encodeSexp(w, elem); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("transcript: cannot encode %T", expr)
}

func decodeSexp(r *msgp.Reader, symtab *SymbolTable) (Sexp, error) {
	typ, err := r.NextType()
	if err != nil {
		return nil, err
	}
	switch typ {
	case msgp.IntType:
		i, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		return &SexpInt{Val: i}, nil

	case msgp.UintType:
		u, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("transcript: integer %d out of range", u)
		}
		return &SexpInt{Val: int64(u)}, nil

	case msgp.StrType:
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, fmt.Errorf("transcript: empty symbol name")
		}
		return symtab.MakeSymbol(s), nil

	case msgp.ArrayType:
		sz, err := r.ReadArrayHeader()
		if err != nil {
			return nil, err
		}
		arr := make([]Sexp, 0, sz)
		for i := uint32(0); i < sz; i++ {
			elem, err := decodeSexp(r, symtab)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return MakeList(arr), nil
	}
	return nil, fmt.Errorf("transcript: unexpected msgpack type %v", typ)
}

// TranscriptWriter appends forms to a transcript stream.
type TranscriptWriter struct {
	w      *msgp.Writer
	closer io.Closer
	count  int
}

func NewTranscriptWriter(w io.Writer) *TranscriptWriter {
	return &TranscriptWriter{w: msgp.NewWriter(w)}
}

// OpenTranscript opens path for appending, creating it if needed.
func OpenTranscript(path string) (*TranscriptWriter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error: could not open transcript '%s': '%v'", path, err)
	}
	tw := NewTranscriptWriter(f)
	tw.closer = f
	return tw, nil
}

// Save writes one form and flushes, so a crash loses at most the
// form being written.
func (tw *TranscriptWriter) Save(expr Sexp) error {
	form := &Form{Expr: expr}
	if err := form.EncodeMsg(tw.w); err != nil {
		return err
	}
	tw.count++
	return tw.w.Flush()
}

func (tw *TranscriptWriter) Count() int {
	return tw.count
}

func (tw *TranscriptWriter) Close() error {
	err := tw.w.Flush()
	if tw.closer != nil {
		if cerr := tw.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadTranscript decodes every form in r.
func ReadTranscript(r io.Reader, symtab *SymbolTable) ([]Sexp, error) {
	if symtab == nil {
		symtab = NewSymbolTable()
	}
	mr := msgp.NewReader(r)
	var xs []Sexp
	for {
		// peek first: a clean end of stream is not an error
		if _, err := mr.NextType(); err != nil {
			if errors.Is(err, io.EOF) {
				return xs, nil
			}
			return xs, err
		}
		form := &Form{Symtab: symtab}
		if err := form.DecodeMsg(mr); err != nil {
			return xs, err
		}
		xs = append(xs, form.Expr)
	}
}

func LoadTranscriptFile(path string, symtab *SymbolTable) ([]Sexp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTranscript(f, symtab)
}
