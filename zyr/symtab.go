package zyr

import (
	"sort"
)

// SymbolTable interns symbol names for one reader session.
// Every symbol read with the same name is the same *SexpSymbol.
type SymbolTable struct {
	symtable    map[string]*SexpSymbol
	revsymtable map[int]string
	nextsymbol  int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symtable:    make(map[string]*SexpSymbol),
		revsymtable: make(map[int]string),
	}
}

func (st *SymbolTable) MakeSymbol(name string) *SexpSymbol {
	if st == nil {
		panic("internal problem: SymbolTable.MakeSymbol called on nil table")
	}
	if symbol, ok := st.symtable[name]; ok {
		return symbol
	}
	symbol := &SexpSymbol{name: name, number: st.nextsymbol}
	st.symtable[name] = symbol
	st.revsymtable[symbol.number] = name

	st.nextsymbol++
	return symbol
}

func (st *SymbolTable) SymbolName(number int) (string, bool) {
	name, ok := st.revsymtable[number]
	return name, ok
}

func (st *SymbolTable) Len() int {
	return len(st.symtable)
}

// Names returns every interned name, sorted.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.symtable))
	for name := range st.symtable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
