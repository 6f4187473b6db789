package cpu

const (
	STACK_LIMIT = 16 // Maximum stack depth
)

// Stack is the return address stack.
type Stack struct {
	Data [STACK_LIMIT]uint16
	Sp   int // Depth; next free slot.
}

// Push a return address. Fails when the stack is full.
func (s *Stack) Push(value uint16) (err error) {
	if s.Full() {
		err = ErrStackOverflow
		return
	}

	s.Data[s.Sp] = value
	s.Sp++
	return
}

// Pop a return address. Fails when the stack is empty.
func (s *Stack) Pop() (value uint16, err error) {
	value, ok := s.Peek()
	if !ok {
		err = ErrStackUnderflow
		return
	}

	s.Sp--
	return
}

func (s *Stack) Empty() bool {
	return s.Sp == 0
}

func (s *Stack) Full() bool {
	return s.Sp == STACK_LIMIT
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[s.Sp-1], true
}

func (s *Stack) Reset() {
	clear(s.Data[:])
	s.Sp = 0
}
