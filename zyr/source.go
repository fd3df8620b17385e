package zyr

import (
	"bufio"
	"fmt"
	"io"
)

// LineSource supplies one raw line of text per call, shown
// after prompt. It returns io.EOF once input is exhausted.
type LineSource interface {
	GetLine(prompt string) (string, error)
}

// History records lines the user typed. liner.State satisfies it.
type History interface {
	AppendHistory(line string)
}

func getLine(reader *bufio.Reader) (string, error) {
	line := make([]byte, 0)
	for {
		linepart, hasMore, err := reader.ReadLine()
		if err != nil {
			return "", err
		}
		line = append(line, linepart...)
		if !hasMore {
			break
		}
	}
	return string(line), nil
}

// BufioSource reads lines from a plain reader. It is the source
// used when the terminal line editor is off: under test, for
// scripts, or when stdin is a pipe.
type BufioSource struct {
	reader *bufio.Reader

	// Echo, if set, receives each prompt before the line is read.
	Echo io.Writer
}

func NewBufioSource(r io.Reader, echo io.Writer) *BufioSource {
	return &BufioSource{
		reader: bufio.NewReader(r),
		Echo:   echo,
	}
}

func (s *BufioSource) GetLine(prompt string) (string, error) {
	if s.Echo != nil {
		fmt.Fprint(s.Echo, prompt)
	}
	return getLine(s.reader)
}

// SliceSource hands out a fixed list of lines, then io.EOF.
// Prompts asks for are kept in Prompts, in order.
type SliceSource struct {
	Lines   []string
	Prompts []string
	next    int
}

func NewSliceSource(lines ...string) *SliceSource {
	return &SliceSource{Lines: lines}
}

func (s *SliceSource) GetLine(prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.next >= len(s.Lines) {
		return "", io.EOF
	}
	line := s.Lines[s.next]
	s.next++
	return line, nil
}

// Remaining is the number of lines not yet handed out.
func (s *SliceSource) Remaining() int {
	return len(s.Lines) - s.next
}

// HistoryList is an in-memory History.
type HistoryList struct {
	Lines []string
}

func (h *HistoryList) AppendHistory(line string) {
	h.Lines = append(h.Lines, line)
}
