package zyr

import (
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test301ConfigFlags(t *testing.T) {

	cv.Convey(`flags parsed into a ReaderConfig should reach the reader it builds`, t, func() {
		cfg := NewReaderConfig("zyr-test")
		cfg.DefineFlags()
		err := cfg.Flags.Parse([]string{
			"-format", "json", "-wrap", "-maxsym", "4", "-prompt", "zyr> ", "-histfile", "", "script.zy"})
		cv.So(err, cv.ShouldBeNil)
		cv.So(cfg.ValidateConfig(), cv.ShouldBeNil)

		cv.So(cfg.Format, cv.ShouldEqual, "json")
		cv.So(cfg.WrapIntegers, cv.ShouldBeTrue)
		cv.So(cfg.HistFile, cv.ShouldEqual, "")
		cv.So(cfg.ContinuationPrompt, cv.ShouldEqual, DefaultContinuationPrompt)
		cv.So(cfg.MaxDepth, cv.ShouldEqual, DefaultMaxDepth)
		cv.So(cfg.Flags.Args(), cv.ShouldResemble, []string{"script.zy"})

		r, src, _ := newTestReader(cfg, "abcd", "abcde", "99999999999999999999")
		x, err := r.PromptAndRead()
		cv.So(err, cv.ShouldBeNil)
		cv.So(symName(x), cv.ShouldEqual, "abcd")

		_, err = r.PromptAndRead()
		cv.So(err, cv.ShouldNotBeNil)

		_, err = r.PromptAndRead()
		cv.So(err, cv.ShouldBeNil)
		cv.So(src.Prompts[0], cv.ShouldEqual, "zyr> ")
	})

	cv.Convey(`ValidateConfig fills in defaults for a zero config`, t, func() {
		cfg := &ReaderConfig{}
		cv.So(cfg.ValidateConfig(), cv.ShouldBeNil)
		cv.So(cfg.Prompt, cv.ShouldEqual, DefaultPrompt)
		cv.So(cfg.ContinuationPrompt, cv.ShouldEqual, DefaultContinuationPrompt)
		cv.So(cfg.MaxSymbolLen, cv.ShouldEqual, DefaultMaxSymbolLen)
		cv.So(cfg.MaxDepth, cv.ShouldEqual, DefaultMaxDepth)
		cv.So(cfg.Format, cv.ShouldEqual, "sexp")
	})

	cv.Convey(`ValidateConfig rejects an unknown format, and saving over the file being loaded`, t, func() {
		cfg := &ReaderConfig{Format: "xml"}
		cv.So(cfg.ValidateConfig(), cv.ShouldNotBeNil)

		cfg = &ReaderConfig{SaveFile: "t.msgp", LoadFile: "t.msgp"}
		cv.So(cfg.ValidateConfig(), cv.ShouldNotBeNil)
	})
}
