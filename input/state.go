package input

// Keyboard tracks which keys are held down.
type Keyboard struct {
	down map[uint64]bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{
		down: make(map[uint64]bool),
	}
}

// Update key state from an event. Non-keyboard events are ignored. It returns
// true if ev is the press edge of a key that was not already held.
func (kb *Keyboard) Apply(ev Event) bool {
	switch e := ev.(type) {
	case KeyPress:
		wasDown := kb.down[e.Code]
		kb.down[e.Code] = true
		return !wasDown
	case KeyRelease:
		delete(kb.down, e.Code)
	}
	return false
}

// Check whether a key is held down.
func (kb *Keyboard) IsDown(code uint64) bool {
	return kb.down[code]
}

// Release all keys.
func (kb *Keyboard) Reset() {
	for code := range kb.down {
		delete(kb.down, code)
	}
}
