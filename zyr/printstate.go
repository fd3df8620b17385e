package zyr

// PrintState threads display state through SexpString() calls.
// Reader trees are acyclic, so only the indent is tracked.
type PrintState struct {
	Indent int
}

func (ps *PrintState) GetIndent() int {
	if ps == nil {
		return 0
	}
	return ps.Indent
}

func (ps *PrintState) AddIndent(addme int) *PrintState {
	if ps == nil {
		return &PrintState{
			Indent: addme,
		}
	}
	return &PrintState{
		Indent: ps.Indent + addme,
	}
}

func NewPrintState() *PrintState {
	return &PrintState{}
}
