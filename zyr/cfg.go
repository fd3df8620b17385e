package zyr

import (
	"flag"
	"fmt"
)

const (
	DefaultPrompt             = "-> "
	DefaultContinuationPrompt = "> "

	// the historical 80 byte token buffer, less its terminator
	DefaultMaxSymbolLen = 79

	DefaultMaxDepth = 10000
)

// configure a reader session and its repl
type ReaderConfig struct {
	Flags   *flag.FlagSet
	Command string
	Quiet   bool
	Verbose bool

	// liner bombs under emacs, avoid it with this flag.
	NoLiner  bool
	HistFile string

	Prompt             string // default "-> "
	ContinuationPrompt string // default "> "

	MaxSymbolLen int
	MaxDepth     int

	// WrapIntegers lets integer literals overflow silently, in
	// two's complement, instead of failing the read.
	WrapIntegers bool

	Format   string // sexp, json, msgpack or goon
	ShowHash bool

	SaveFile string
	LoadFile string
}

func NewReaderConfig(cmdname string) *ReaderConfig {
	return &ReaderConfig{
		Flags: flag.NewFlagSet(cmdname, flag.ExitOnError),
	}
}

// call DefineFlags before myflags.Parse()
func (c *ReaderConfig) DefineFlags() {
	c.Flags.StringVar(&c.Command, "c", "", "expressions to read and print")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the version banner")
	c.Flags.BoolVar(&c.Verbose, "verbose", false, "trace line fetches and prompt changes")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read plain stdin instead of using the line editor")
	c.Flags.StringVar(&c.HistFile, "histfile", DefaultHistoryFile(), "line editor history file; empty to disable")
	c.Flags.StringVar(&c.Prompt, "prompt", DefaultPrompt, "primary prompt")
	c.Flags.StringVar(&c.ContinuationPrompt, "cprompt", DefaultContinuationPrompt, "prompt shown while a list is still open")
	c.Flags.IntVar(&c.MaxSymbolLen, "maxsym", DefaultMaxSymbolLen, "longest symbol accepted")
	c.Flags.IntVar(&c.MaxDepth, "maxdepth", DefaultMaxDepth, "deepest list nesting accepted")
	c.Flags.BoolVar(&c.WrapIntegers, "wrap", false, "let integer literals wrap around instead of failing")
	c.Flags.StringVar(&c.Format, "format", "sexp", "output format: sexp, json, msgpack or goon")
	c.Flags.BoolVar(&c.ShowHash, "hash", false, "print a blake2b fingerprint after each form")
	c.Flags.StringVar(&c.SaveFile, "save", "", "append every form read to this greenpack transcript")
	c.Flags.StringVar(&c.LoadFile, "load", "", "print the forms in this greenpack transcript and exit")
}

// call c.ValidateConfig() after myflags.Parse()
func (c *ReaderConfig) ValidateConfig() error {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.ContinuationPrompt == "" {
		c.ContinuationPrompt = DefaultContinuationPrompt
	}
	if c.MaxSymbolLen <= 0 {
		c.MaxSymbolLen = DefaultMaxSymbolLen
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	switch c.Format {
	case "":
		c.Format = "sexp"
	case "sexp", "json", "msgpack", "goon":
	default:
		return fmt.Errorf("unknown -format '%s'; use sexp, json, msgpack or goon", c.Format)
	}
	if c.SaveFile != "" && c.SaveFile == c.LoadFile {
		return fmt.Errorf("-save and -load name the same file '%s'", c.SaveFile)
	}
	return nil
}
