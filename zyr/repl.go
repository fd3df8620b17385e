package zyr

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shurcooL/go-goon"
)

// ReplSession prints each form a Reader produces. It stands in for
// the evaluator: the reader's output is shown back to the user in
// the chosen format.
type ReplSession struct {
	reader   *Reader
	out      io.Writer
	sink     ErrorSink
	format   string
	showHash bool
	dump     bool
	saver    *TranscriptWriter
}

var commandWords = []string{
	"quit", ".quit", ".dump", ".hash", ".sexp", ".json", ".msgpack", ".goon", ".verb", ".syms",
}

func NewReplSession(r *Reader, cfg *ReaderConfig, out io.Writer, sink ErrorSink) *ReplSession {
	if sink == nil {
		sink = &StderrSink{}
	}
	format := cfg.Format
	if format == "" {
		format = "sexp"
	}
	r.SetErrorSink(sink)
	r.SetCommandWords(commandWords...)
	return &ReplSession{
		reader:   r,
		out:      out,
		sink:     sink,
		format:   format,
		showHash: cfg.ShowHash,
	}
}

// SaveTo appends every form read from now on to tw.
func (s *ReplSession) SaveTo(tw *TranscriptWriter) {
	s.saver = tw
}

func (s *ReplSession) Format() string {
	return s.format
}

// PrintForm writes expr to the session output in the current
// format, followed by its fingerprint if that is switched on.
func (s *ReplSession) PrintForm(expr Sexp) error {
	var text string
	switch s.format {
	case "json":
		text = SexpToJson(expr)
	case "msgpack":
		by, err := AppendSexp(nil, expr)
		if err != nil {
			return err
		}
		text = fmt.Sprintf("%x", by)
	case "goon":
		text = strings.TrimRight(goon.Sdump(expr), "\n")
	default:
		text = SexpString(expr)
	}
	if s.dump && s.format != "goon" {
		fmt.Fprint(s.out, goon.Sdump(expr))
	}
	if s.showHash {
		_, err := fmt.Fprintf(s.out, "%s    ; %016x\n", text, Fingerprint(expr))
		return err
	}
	_, err := fmt.Fprintln(s.out, text)
	return err
}

// command runs the repl commands. Commands are symbols typed on
// their own at top level.
func (s *ReplSession) command(name string) (quit bool, handled bool) {
	switch name {
	case "quit", ".quit":
		return true, true
	case ".dump":
		s.dump = !s.dump
		fmt.Fprintf(s.out, "dump: %v.\n", s.dump)
	case ".hash":
		s.showHash = !s.showHash
		fmt.Fprintf(s.out, "hash: %v.\n", s.showHash)
	case ".sexp", ".json", ".msgpack", ".goon":
		s.format = name[1:]
		fmt.Fprintf(s.out, "format: %s.\n", s.format)
	case ".verb":
		Verbose = !Verbose
		fmt.Fprintf(s.out, "verbose: %v.\n", Verbose)
	case ".syms":
		fmt.Fprintf(s.out, "%s\n", strings.Join(s.reader.Symbols().Names(), " "))
	default:
		return false, false
	}
	return false, true
}

// Run reads and prints forms until end of input or quit. Syntax
// errors are reported and the loop carries on; a failing line
// source ends it with that error.
func (s *ReplSession) Run() error {
	for {
		expr, err := s.reader.PromptAndRead()
		switch {
		case err == nil:
		case err == ErrEndOfInput:
			return nil
		case err == ErrUnterminatedList:
			reportError(s.sink, err)
			return nil
		case IsSyntaxError(err):
			reportError(s.sink, err)
			continue
		default:
			return err
		}

		if sym, isSym := expr.(*SexpSymbol); isSym {
			quit, handled := s.command(sym.name)
			if quit {
				return nil
			}
			if handled {
				continue
			}
		}

		if s.saver != nil {
			if err := s.saver.Save(expr); err != nil {
				s.sink.Error("could not save form to transcript: ", err.Error())
			}
		}
		if err := s.PrintForm(expr); err != nil {
			return err
		}
	}
}

// Repl runs an interactive session on r.
func Repl(r *Reader, cfg *ReaderConfig, out io.Writer) error {
	if !cfg.Quiet {
		fmt.Fprintf(out, "zyr version %s\n", Version())
		fmt.Fprintf(out, "type a form to see it read back. .quit or ctrl-d to exit.\n")
	}

	session := NewReplSession(r, cfg, out, &StderrSink{})
	if cfg.SaveFile != "" {
		tw, err := OpenTranscript(cfg.SaveFile)
		if err != nil {
			return err
		}
		defer tw.Close()
		session.SaveTo(tw)
	}
	return session.Run()
}

// printAll shows already-read forms, as for -c, -load and scripts.
func printAll(xs []Sexp, cfg *ReaderConfig, out io.Writer) error {
	session := NewReplSession(NewReader(NewSliceSource(), cfg), cfg, out, nil)
	for _, x := range xs {
		if err := session.PrintForm(x); err != nil {
			return err
		}
	}
	return nil
}

func runScript(fname string, cfg *ReaderConfig, out io.Writer) error {
	file, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	r := NewReader(NewBufioSource(file, nil), cfg)
	xs, err := r.ReadAll()
	if perr := printAll(xs, cfg, out); perr != nil {
		return perr
	}
	if err != nil {
		return fmt.Errorf("%s:%d: %v", fname, r.Linenum(), err)
	}
	return nil
}

// like main() for a standalone repl, now in library. Returns the
// process exit status.
func ReplMain(cfg *ReaderConfig) int {
	Verbose = cfg.Verbose

	if cfg.LoadFile != "" {
		xs, err := LoadTranscriptFile(cfg.LoadFile, nil)
		if perr := printAll(xs, cfg, os.Stdout); perr != nil && err == nil {
			err = perr
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		return 0
	}

	if cfg.Command != "" {
		xs, err := ReadAllString(cfg.Command, cfg, nil)
		if perr := printAll(xs, cfg, os.Stdout); perr != nil && err == nil {
			err = perr
		}
		if err != nil {
			reportError(&StderrSink{}, err)
			return 1
		}
		return 0
	}

	args := cfg.Flags.Args()
	if len(args) > 0 {
		if err := runScript(args[0], cfg, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		return 0
	}

	var r *Reader
	if cfg.NoLiner {
		// reader is used if one wishes to drop the liner library.
		// Useful for not full terminal env, like under test.
		r = NewReader(NewBufioSource(os.Stdin, os.Stdout), cfg)
	} else {
		symtab := NewSymbolTable()
		pr := NewPrompter(cfg.HistFile, symtab)
		defer pr.Close()
		r = NewReader(pr, cfg)
		r.SetSymbolTable(symtab)
	}

	if err := Repl(r, cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}
