package zyr

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/glycerine/liner"
)

// DefaultHistoryFile is where the line editor keeps its history
// between sessions.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zyrhist"
	}
	return filepath.Join(home, ".zyrhist")
}

// Prompter is the interactive LineSource: a liner terminal line
// editor with persistent history and tab completion of the
// symbols read so far.
type Prompter struct {
	prompter *liner.State
	histfile string
	symtab   *SymbolTable
}

func NewPrompter(histfile string, symtab *SymbolTable) *Prompter {
	p := &Prompter{
		prompter: liner.NewLiner(),
		histfile: histfile,
		symtab:   symtab,
	}

	p.prompter.SetCtrlCAborts(false)
	p.prompter.SetCompleter(p.complete)

	if histfile != "" {
		if f, err := os.Open(histfile); err == nil {
			p.prompter.ReadHistory(f)
			f.Close()
		}
	}

	return p
}

// complete offers interned symbol names that extend the last word
// of line.
func (p *Prompter) complete(line string) (c []string) {
	if p.symtab == nil {
		return
	}
	cut := strings.LastIndexFunc(line, func(r rune) bool {
		return r < 128 && isSeparator(byte(r))
	})
	head, word := line[:cut+1], line[cut+1:]
	if word == "" {
		return
	}
	for _, n := range p.symtab.Names() {
		if strings.HasPrefix(n, word) {
			c = append(c, head+n)
		}
	}
	return
}

func (p *Prompter) Close() {
	defer p.prompter.Close()
	if p.histfile == "" {
		return
	}
	if f, err := os.Create(p.histfile); err != nil {
		log.Print("Error writing history file: ", err)
	} else {
		p.prompter.WriteHistory(f)
		f.Close()
	}
}

// GetLine returns io.EOF when the user types ctrl-d.
func (p *Prompter) GetLine(prompt string) (line string, err error) {
	return p.prompter.Prompt(prompt)
}

func (p *Prompter) AppendHistory(line string) {
	p.prompter.AppendHistory(line)
}
