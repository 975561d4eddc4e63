package carousel

import "time"

// TimerKind identifies which of the controller's timers a request belongs to.
type TimerKind int

const (
	// TimerAuto is the periodic auto-advance tick.
	TimerAuto TimerKind = iota + 1
	// TimerResume fires when the post-interaction cooldown has elapsed.
	TimerResume
	// TimerSettle fires once the first render after new items has settled.
	TimerSettle
	// TimerFrame advances a step animation by one frame.
	TimerFrame

	timerKinds = int(TimerFrame) + 1
)

func (k TimerKind) String() string {
	switch k {
	case TimerAuto:
		return "auto"
	case TimerResume:
		return "resume"
	case TimerSettle:
		return "settle"
	case TimerFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// Timer asks the host to call HandleTimer with Fire() after Delay.
// The controller never sleeps and never starts goroutines; hosts decide how
// to wait (tea.Tick in the TUI, a virtual clock in tests).
type Timer struct {
	Kind  TimerKind
	Gen   uint64
	Delay time.Duration
}

// Fire is the message delivered back to the controller when a timer expires.
type Fire struct {
	Kind TimerKind
	Gen  uint64
}

// Fire returns the message the host must deliver when the timer expires.
func (t Timer) Fire() Fire {
	return Fire{Kind: t.Kind, Gen: t.Gen}
}

// timers tracks one generation counter per kind. A fire is only honored when
// its generation matches and the timer is still pending, so bumping the
// generation cancels whatever is in flight.
type timers struct {
	gen     [timerKinds]uint64
	pending [timerKinds]bool
}

func (t *timers) arm(kind TimerKind, delay time.Duration) []Timer {
	t.gen[kind]++
	t.pending[kind] = true
	return []Timer{{Kind: kind, Gen: t.gen[kind], Delay: delay}}
}

func (t *timers) cancel(kind TimerKind) {
	if t.pending[kind] {
		t.gen[kind]++
		t.pending[kind] = false
	}
}

func (t *timers) cancelAll() {
	for k := TimerAuto; int(k) < timerKinds; k++ {
		t.cancel(k)
	}
}

// consume reports whether f is the live timer of its kind and marks it spent.
func (t *timers) consume(f Fire) bool {
	if f.Kind < TimerAuto || int(f.Kind) >= timerKinds {
		return false
	}
	if f.Gen != t.gen[f.Kind] || !t.pending[f.Kind] {
		return false
	}
	t.pending[f.Kind] = false
	return true
}

func (t *timers) isPending(kind TimerKind) bool {
	return t.pending[kind]
}
