package zyr

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func newTestSession(cfg *ReaderConfig, lines ...string) (*ReplSession, *SliceSource, *bytes.Buffer, *recordingSink) {
	if cfg == nil {
		cfg = &ReaderConfig{}
	}
	src := NewSliceSource(lines...)
	out := &bytes.Buffer{}
	sink := &recordingSink{}
	s := NewReplSession(NewReader(src, cfg), cfg, out, sink)
	return s, src, out, sink
}

func Test201ReplPrintsEachForm(t *testing.T) {

	cv.Convey(`the repl should print each form it reads, in canonical form, and stop at quit`, t, func() {
		s, src, out, sink := newTestSession(nil,
			"(a", "   b) ; done", "42", ")", "1 2", "quit", "never read")

		err := s.Run()
		cv.So(err, cv.ShouldBeNil)
		cv.So(out.String(), cv.ShouldEqual, "(a b)\n42\n1\n")
		cv.So(src.Remaining(), cv.ShouldEqual, 1)

		// the stray paren and the trailing 2 were both reported, and
		// neither stopped the session
		cv.So(sink.msgs, cv.ShouldResemble, []string{
			"unexpected character: ",
			"unexpected characters at end of line:",
		})
		cv.So(sink.contexts, cv.ShouldResemble, []string{")", "2"})
	})

	cv.Convey(`end of input ends the session cleanly, and so does an unterminated list, after reporting it`, t, func() {
		s, _, out, sink := newTestSession(nil, "x")
		cv.So(s.Run(), cv.ShouldBeNil)
		cv.So(out.String(), cv.ShouldEqual, "x\n")
		cv.So(len(sink.msgs), cv.ShouldEqual, 0)

		s, _, out, sink = newTestSession(nil, "y", "(z")
		cv.So(s.Run(), cv.ShouldBeNil)
		cv.So(out.String(), cv.ShouldEqual, "y\n")
		cv.So(sink.msgs, cv.ShouldResemble, []string{ErrUnterminatedList.Error()})
	})

	cv.Convey(`a failing line source ends the session with its error`, t, func() {
		cfg := &ReaderConfig{}
		s := NewReplSession(NewReader(failingSource{}, cfg), cfg, &bytes.Buffer{}, &recordingSink{})
		err := s.Run()
		cv.So(errors.Is(err, errBrokenPipe), cv.ShouldBeTrue)
	})
}

func Test202ReplCommands(t *testing.T) {

	cv.Convey(`dot commands switch the output format and fingerprinting, and are not printed as forms`, t, func() {
		s, _, out, _ := newTestSession(nil,
			"7", ".msgpack", "7", ".json", "(1 x)", ".sexp", ".hash", "7", ".hash", ".syms", ".quit")

		cv.So(s.Format(), cv.ShouldEqual, "sexp")
		err := s.Run()
		cv.So(err, cv.ShouldBeNil)
		cv.So(s.Format(), cv.ShouldEqual, "sexp")

		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		cv.So(len(lines), cv.ShouldEqual, 10)
		cv.So(lines[0], cv.ShouldEqual, "7")
		cv.So(lines[1], cv.ShouldEqual, "format: msgpack.")
		cv.So(lines[2], cv.ShouldEqual, "07")
		cv.So(lines[3], cv.ShouldEqual, "format: json.")
		cv.So(lines[4], cv.ShouldContainSubstring, `"x"`)
		cv.So(lines[5], cv.ShouldEqual, "format: sexp.")
		cv.So(lines[6], cv.ShouldEqual, "hash: true.")
		cv.So(lines[7], cv.ShouldEqual, fmt.Sprintf("7    ; %016x", Fingerprint(&SexpInt{Val: 7})))
		cv.So(lines[8], cv.ShouldEqual, "hash: false.")
		cv.So(lines[9], cv.ShouldEqual, "x")
	})

	cv.Convey(`the goon format and .dump show the Go structure of a form`, t, func() {
		s, _, out, _ := newTestSession(&ReaderConfig{Format: "goon"}, "5", ".sexp", ".dump", "6")
		cv.So(s.Run(), cv.ShouldBeNil)
		text := out.String()
		cv.So(text, cv.ShouldContainSubstring, "SexpInt")
		cv.So(text, cv.ShouldContainSubstring, "dump: true.")
		// goon names the type twice per dump: once for the goon form
		// of 5, once for the .dump of 6
		cv.So(strings.Count(text, "(*zyr.SexpInt)"), cv.ShouldEqual, 2)
		cv.So(text, cv.ShouldEndWith, "\n6\n")
	})
}

func Test206CommandsAreNotInterned(t *testing.T) {

	cv.Convey(`command words typed at top level stay out of the symbol table, so .syms and completion only see forms`, t, func() {
		s, _, out, _ := newTestSession(nil, ".hash", ".hash", "(alpha .json)", ".syms", ".quit")
		cv.So(s.Run(), cv.ShouldBeNil)

		syms := s.reader.Symbols()
		cv.So(syms.Names(), cv.ShouldResemble, []string{".json", "alpha"})

		p := &Prompter{symtab: syms}
		cv.So(len(p.complete(".h")), cv.ShouldEqual, 0)
		cv.So(p.complete("(al"), cv.ShouldResemble, []string{"(alpha"})

		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		cv.So(lines[len(lines)-1], cv.ShouldEqual, ".json alpha")
	})

	cv.Convey(`outside a repl session the same words are ordinary interned symbols`, t, func() {
		r, _, _ := newTestReader(nil, ".hash")
		x, err := r.PromptAndRead()
		cv.So(err, cv.ShouldBeNil)
		cv.So(x.(*SexpSymbol).Number(), cv.ShouldEqual, 0)
		cv.So(r.Symbols().Names(), cv.ShouldResemble, []string{".hash"})
	})
}

func Test203ReplTranscript(t *testing.T) {

	cv.Convey(`a session saving to a transcript records every form but not the commands`, t, func() {
		var buf bytes.Buffer
		tw := NewTranscriptWriter(&buf)

		s, _, _, _ := newTestSession(nil, "(a 1)", ".json", "b", ")", "-3", "quit")
		s.SaveTo(tw)
		cv.So(s.Run(), cv.ShouldBeNil)
		cv.So(tw.Count(), cv.ShouldEqual, 3)
		panicOn(tw.Close())

		xs, err := ReadTranscript(&buf, nil)
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(xs), cv.ShouldEqual, 3)
		cv.So(SexpString(xs[0]), cv.ShouldEqual, "(a 1)")
		cv.So(SexpString(xs[1]), cv.ShouldEqual, "b")
		cv.So(SexpString(xs[2]), cv.ShouldEqual, "-3")
	})

	cv.Convey(`a transcript file opened twice is appended to, not truncated`, t, func() {
		path := filepath.Join(t.TempDir(), "forms.msgp")
		for _, text := range []string{"(one)", "two"} {
			tw, err := OpenTranscript(path)
			panicOn(err)
			x, err := ReadString(text)
			panicOn(err)
			panicOn(tw.Save(x))
			panicOn(tw.Close())
		}
		xs, err := LoadTranscriptFile(path, nil)
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(xs), cv.ShouldEqual, 2)
		cv.So(SexpString(xs[0]), cv.ShouldEqual, "(one)")
		cv.So(SexpString(xs[1]), cv.ShouldEqual, "two")
	})
}

func Test204Scripts(t *testing.T) {

	cv.Convey(`runScript reads a whole file and prints its forms`, t, func() {
		dir := t.TempDir()
		fname := filepath.Join(dir, "ok.zy")
		panicOn(os.WriteFile(fname, []byte("; a script\n(a\n  b) ; c\n\n5\n"), 0644))

		var out bytes.Buffer
		err := runScript(fname, &ReaderConfig{}, &out)
		cv.So(err, cv.ShouldBeNil)
		cv.So(out.String(), cv.ShouldEqual, "(a b)\n5\n")
	})

	cv.Convey(`a script that ends inside a list prints what it read, then names the file in its error`, t, func() {
		dir := t.TempDir()
		fname := filepath.Join(dir, "bad.zy")
		panicOn(os.WriteFile(fname, []byte("1\n(2 3\n"), 0644))

		var out bytes.Buffer
		err := runScript(fname, &ReaderConfig{Format: "json"}, &out)
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldContainSubstring, fname)
		cv.So(err.Error(), cv.ShouldContainSubstring, ErrUnterminatedList.Error())
		cv.So(out.String(), cv.ShouldEqual, "1\n")
	})

	cv.Convey(`Repl prints the banner unless quiet`, t, func() {
		var out bytes.Buffer
		r := NewReader(NewSliceSource("z"), nil)
		cv.So(Repl(r, &ReaderConfig{}, &out), cv.ShouldBeNil)
		cv.So(out.String(), cv.ShouldStartWith, "zyr version "+Version())
		cv.So(out.String(), cv.ShouldEndWith, "\nz\n")

		out.Reset()
		r = NewReader(NewSliceSource("z"), nil)
		cv.So(Repl(r, &ReaderConfig{Quiet: true}, &out), cv.ShouldBeNil)
		cv.So(out.String(), cv.ShouldEqual, "z\n")
	})
}

func Test205BufioSourceEchoesPrompts(t *testing.T) {

	cv.Convey(`reading plain text, each prompt is echoed before its line is read`, t, func() {
		var echo bytes.Buffer
		src := NewBufioSource(strings.NewReader("(a\nb)\n7"), &echo)
		r := NewReader(src, nil)
		xs, err := r.ReadAll()
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(xs), cv.ShouldEqual, 2)
		cv.So(echo.String(), cv.ShouldEqual, "-> > -> -> ")
	})
}
