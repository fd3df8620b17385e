package zyr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

type PromptMode int

const (
	PrimaryPrompt PromptMode = iota
	SecondaryPrompt
)

func (m PromptMode) String() string {
	if m == SecondaryPrompt {
		return "secondary"
	}
	return "primary"
}

// Reader is one read session: it owns the current line, the scan
// position within it, the prompt mode and the symbol table. A
// Reader is not safe for use by more than one goroutine; give
// each session its own.
type Reader struct {
	src    LineSource
	hist   History
	sink   ErrorSink
	symtab *SymbolTable

	primary      string
	continuation string
	maxSymbolLen int
	maxDepth     int
	wrapIntegers bool

	// words read at top level without interning them
	commands map[string]bool

	cur     cursor
	mode    PromptMode
	symbuf  bytes.Buffer
	depth   int
	linenum int
}

// NewReader starts a session reading from src. A nil cfg means
// the defaults. If src also implements History, every non-empty
// line it returns is recorded there.
func NewReader(src LineSource, cfg *ReaderConfig) *Reader {
	if cfg == nil {
		cfg = &ReaderConfig{}
	}
	r := &Reader{
		src:          src,
		sink:         &StderrSink{},
		symtab:       NewSymbolTable(),
		primary:      cfg.Prompt,
		continuation: cfg.ContinuationPrompt,
		maxSymbolLen: cfg.MaxSymbolLen,
		maxDepth:     cfg.MaxDepth,
		wrapIntegers: cfg.WrapIntegers,
	}
	if r.primary == "" {
		r.primary = DefaultPrompt
	}
	if r.continuation == "" {
		r.continuation = DefaultContinuationPrompt
	}
	if r.maxSymbolLen <= 0 {
		r.maxSymbolLen = DefaultMaxSymbolLen
	}
	if r.maxDepth <= 0 {
		r.maxDepth = DefaultMaxDepth
	}
	if h, ok := src.(History); ok {
		r.hist = h
	}
	return r
}

func (r *Reader) SetHistory(h History) {
	r.hist = h
}

func (r *Reader) SetErrorSink(sink ErrorSink) {
	r.sink = sink
}

// SetSymbolTable shares an existing table, e.g. one the line
// editor completes from.
func (r *Reader) SetSymbolTable(st *SymbolTable) {
	r.symtab = st
}

// SetCommandWords names symbols that, typed alone at top level,
// are handed back uninterned with number -1. They stay out of the
// symbol table, and so out of completion. Inside a list they read
// as ordinary symbols.
func (r *Reader) SetCommandWords(words ...string) {
	r.commands = make(map[string]bool, len(words))
	for _, w := range words {
		r.commands[w] = true
	}
}

func (r *Reader) Symbols() *SymbolTable {
	return r.symtab
}

// Linenum counts the lines fetched so far.
func (r *Reader) Linenum() int {
	return r.linenum
}

func (r *Reader) Mode() PromptMode {
	return r.mode
}

func (r *Reader) printPrimaryPrompt() {
	r.mode = PrimaryPrompt
}

func (r *Reader) printSecondaryPrompt() {
	r.mode = SecondaryPrompt
}

func (r *Reader) prompt() string {
	if r.mode == SecondaryPrompt {
		return r.continuation
	}
	return r.primary
}

// fillInputBuffer replaces the current line with a fresh one from
// the source, shown under the current prompt, and skips its
// leading blanks.
func (r *Reader) fillInputBuffer() error {
	line, err := r.src.GetLine(r.prompt())
	if err != nil {
		r.cur.reset("")
		if errors.Is(err, io.EOF) {
			VPrintf("line source exhausted at %s prompt", r.mode)
			return ErrEndOfInput
		}
		return fmt.Errorf("reading line %d: %w", r.linenum+1, err)
	}
	r.linenum++
	VPrintf("line %d (%s prompt): '%s'", r.linenum, r.mode, line)

	if line != "" && r.hist != nil {
		r.hist.AppendHistory(line)
	}

	r.cur.reset(line)
	r.cur.skipSpaces()
	return nil
}

// skipNewlines moves to the next token, fetching lines under the
// secondary prompt for as long as the current one is used up.
func (r *Reader) skipNewlines() error {
	r.cur.skipSpaces()
	for r.cur.atEnd() {
		r.printSecondaryPrompt()
		err := r.fillInputBuffer()
		if err == ErrEndOfInput {
			return ErrUnterminatedList
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// PromptAndRead reads one complete top-level form. Blank and
// comment-only lines are skipped. Text left on the line after the
// form is reported to the error sink and dropped; the form is
// still returned. At end of input it returns ErrEndOfInput.
//
// On any other error the rest of the current line is discarded,
// so the next call starts on a fresh line.
func (r *Reader) PromptAndRead() (Sexp, error) {
	r.depth = 0
	for {
		r.printPrimaryPrompt()
		if err := r.fillInputBuffer(); err != nil {
			return nil, err
		}
		if !r.cur.atEnd() {
			break
		}
	}

	expr, err := r.readExpression()
	if err != nil {
		r.cur.discard()
		return nil, err
	}

	r.cur.skipSpaces()
	if !r.cur.atEnd() {
		r.sink.Error("unexpected characters at end of line:", r.cur.rest())
		r.cur.discard()
	}
	return expr, nil
}

// ReadAll reads forms until the source is exhausted. It stops at
// the first error, returning the forms read before it.
func (r *Reader) ReadAll() ([]Sexp, error) {
	var xs []Sexp
	for {
		expr, err := r.PromptAndRead()
		if err == ErrEndOfInput {
			return xs, nil
		}
		if err != nil {
			return xs, err
		}
		xs = append(xs, expr)
	}
}

func (r *Reader) readExpression() (Sexp, error) {
	ch := r.cur.peek()
	switch {
	case isDigit(ch):
		return r.readInteger(false)

	case ch == '-' && isDigit(r.cur.peekAt(1)):
		r.cur.advance()
		return r.readInteger(true)

	case ch == '(':
		r.cur.advance()
		return r.readList()
	}
	return r.readSymbol()
}

// readInteger scans a run of digits; it stops at the first
// non-digit whether or not that is a separator.
func (r *Reader) readInteger(negative bool) (Sexp, error) {
	start := r.cur.pos

	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}

	var val uint64
	overflow := false
	for isDigit(r.cur.peek()) {
		d := uint64(r.cur.peek() - '0')
		if !overflow && val > (limit-d)/10 {
			overflow = true
		}
		val = val*10 + d
		r.cur.advance()
	}

	if overflow && !r.wrapIntegers {
		digits := r.cur.buf[start:r.cur.pos]
		if negative {
			digits = "-" + digits
		}
		return nil, &IntegerOverflowError{Digits: digits}
	}

	n := int64(val)
	if negative {
		n = -n
	}
	return &SexpInt{Val: n}, nil
}

// readList reads the elements after an opening paren up to and
// including the matching close. Elements may be spread over any
// number of lines.
func (r *Reader) readList() (Sexp, error) {
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > r.maxDepth {
		return nil, ErrTooDeep
	}

	var list Sexp = SexpNull
	var last *SexpPair
	for {
		if err := r.skipNewlines(); err != nil {
			return nil, err
		}

		if r.cur.peek() == ')' {
			r.cur.advance()
			return list, nil
		}

		expr, err := r.readExpression()
		if err != nil {
			return nil, err
		}

		cell := Cons(expr, SexpNull)
		if last == nil {
			list = cell
		} else {
			last.Tail = cell
		}
		last = cell
	}
}

func (r *Reader) readSymbol() (Sexp, error) {
	r.symbuf.Reset()
	for !isSeparator(r.cur.peek()) {
		if r.symbuf.Len() >= r.maxSymbolLen {
			return nil, &SymbolTooLongError{
				Prefix: r.symbuf.String(),
				Limit:  r.maxSymbolLen,
			}
		}
		r.symbuf.WriteByte(r.cur.peek())
		r.cur.advance()
	}

	if r.symbuf.Len() == 0 {
		return nil, &UnexpectedCharError{Char: r.cur.peek(), Rest: r.cur.rest()}
	}
	name := r.symbuf.String()
	if r.depth == 0 && r.commands[name] {
		return &SexpSymbol{name: name, number: -1}, nil
	}
	return r.symtab.MakeSymbol(name), nil
}

// TrailingTextError is returned by ReadString when the text holds
// more than one form.
type TrailingTextError struct {
	Rest string
}

func (e *TrailingTextError) Error() string {
	return fmt.Sprintf("unexpected characters at end of input: '%s'", e.Rest)
}

// ReadString reads exactly one form from s, which may span
// several lines. Anything but blanks and comments after the form
// is an error.
func ReadString(s string) (Sexp, error) {
	r := NewReader(NewSliceSource(strings.Split(s, "\n")...), nil)

	var trailing *TrailingTextError
	r.SetErrorSink(ErrorSinkFunc(func(msg, context string) {
		if trailing == nil {
			trailing = &TrailingTextError{Rest: context}
		}
	}))

	expr, err := r.PromptAndRead()
	if err != nil {
		return nil, err
	}
	if trailing != nil {
		return nil, trailing
	}

	more, err := r.PromptAndRead()
	switch {
	case err == ErrEndOfInput:
		return expr, nil
	case err != nil:
		return nil, err
	}
	return nil, &TrailingTextError{Rest: more.SexpString(nil)}
}

// ReadAllString reads every form in s, reporting trailing text
// to sink. A nil sink means stderr.
func ReadAllString(s string, cfg *ReaderConfig, sink ErrorSink) ([]Sexp, error) {
	r := NewReader(NewSliceSource(strings.Split(s, "\n")...), cfg)
	if sink != nil {
		r.SetErrorSink(sink)
	}
	return r.ReadAll()
}
