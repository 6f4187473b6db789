package cpu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/chip8/internal"
)

// State is a copy of the architectural state of the CPU, suitable for
// handing to another goroutine.
type State struct {
	V        [REGISTER_COUNT]uint8
	I        uint16
	Pc       uint16
	Sp       int
	Stack    [STACK_LIMIT]uint16
	Delay    uint8
	Sound    uint8
	Awaiting bool
	Target   int
	Ticks    int
}

// Registers iterates over the register file by name, V registers first.
func (st State) Registers() iter.Seq2[string, uint16] {
	special := func(yield func(string, uint16) bool) {
		_ = yield("i", st.I) &&
			yield("pc", st.Pc) &&
			yield("sp", uint16(st.Sp)) &&
			yield("dt", uint16(st.Delay)) &&
			yield("st", uint16(st.Sound))
	}

	v := make([]uint16, len(st.V))
	for n, value := range st.V {
		v[n] = uint16(value)
	}

	return internal.IterSeq2Concat(internal.IterSeq2Named("v%x", v), special)
}

// CallStack returns the active return addresses, innermost last.
func (st State) CallStack() []uint16 {
	return st.Stack[:st.Sp]
}

func (st State) String() string {
	var text []string
	for name, value := range st.Registers() {
		text = append(text, fmt.Sprintf("%v=0x%x", name, value))
	}
	if st.Awaiting {
		text = append(text, fmt.Sprintf("await=v%x", st.Target))
	}

	return strings.Join(text, " ")
}
