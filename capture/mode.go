package capture

import "fmt"

// Mode the invocation count a verification expects, Once() unless configured
type Mode interface {
	Verify(actual int) error
	String() string
}

type times struct{ wanted int }

type atLeast struct{ wanted int }

type atMost struct{ wanted int }

// Times exactly n calls
func Times(n int) Mode {
	return times{wanted: n}
}

// Once exactly one call
func Once() Mode {
	return times{wanted: 1}
}

// Never no call at all
func Never() Mode {
	return times{wanted: 0}
}

// AtLeast n calls or more
func AtLeast(n int) Mode {
	return atLeast{wanted: n}
}

// AtLeastOnce one call or more
func AtLeastOnce() Mode {
	return atLeast{wanted: 1}
}

// AtMost n calls or less
func AtMost(n int) Mode {
	return atMost{wanted: n}
}

func (m times) Verify(actual int) error {
	if actual != m.wanted {
		return fmt.Errorf("Expected number of calls (%d) does not match the actual number of calls (%d).", m.wanted, actual)
	}
	return nil
}

func (m times) String() string {
	return fmt.Sprintf("times(%d)", m.wanted)
}

func (m atLeast) Verify(actual int) error {
	if actual < m.wanted {
		return fmt.Errorf("Expected at least %d call(s) but the actual number of calls is %d.", m.wanted, actual)
	}
	return nil
}

func (m atLeast) String() string {
	return fmt.Sprintf("atLeast(%d)", m.wanted)
}

func (m atMost) Verify(actual int) error {
	if actual > m.wanted {
		return fmt.Errorf("Expected at most %d call(s) but the actual number of calls is %d.", m.wanted, actual)
	}
	return nil
}

func (m atMost) String() string {
	return fmt.Sprintf("atMost(%d)", m.wanted)
}
