/*
The zyreader command line REPL is known as `zyr`. It reads
s-expressions, one top-level form per prompt, and prints them back.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glycerine/zyreader/zyr"
)

func usage(myflags *flag.FlagSet) {
	fmt.Printf("zyr command line help:\n")
	myflags.PrintDefaults()
	os.Exit(1)
}

func main() {
	cfg := zyr.NewReaderConfig("zyr")
	cfg.DefineFlags()
	err := cfg.Flags.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		usage(cfg.Flags)
	}

	if err != nil {
		panic(err)
	}
	err = cfg.ValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zyr command line error: '%v'\n", err)
		usage(cfg.Flags)
	}

	// the library does all the heavy lifting.
	os.Exit(zyr.ReplMain(cfg))
}
