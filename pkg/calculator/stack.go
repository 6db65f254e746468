package calculator

// valueStack holds the values awaiting an operator during a single
// evaluation. It is not thread-safe and should only be accessed by a single
// goroutine.
type valueStack struct {
	values []Number
}

func (s *valueStack) push(v Number) {
	s.values = append(s.values, v)
}

// pop removes the top value. Callers check len first.
func (s *valueStack) pop() Number {
	top := len(s.values) - 1
	v := s.values[top]
	s.values[top] = nil
	s.values = s.values[:top]
	return v
}

func (s *valueStack) len() int {
	return len(s.values)
}

// apply pops two values and combines them with op, first-popped first.
func (s *valueStack) apply(op arithmetic) (Number, error) {
	first := s.pop()
	second := s.pop()
	return op(first, second)
}
