package vm

// frameKind tags a choice-point frame pushed onto Scratch's stack.
type frameKind byte

const (
	framePlain frameKind = iota // an ordinary split/alternation choice point
	frameLookahead
	frameNegLookahead
)

// frame is one choice point: where to resume (pc, pos), and the save-stack
// mark to roll capture/register writes back to when this frame is taken.
type frame struct {
	pc       int
	pos      int
	saveMark int
	kind     frameKind
	onFailPC int // lookahead frames only: the rel target from Lookahead/NegativeLookahead
}

// saveKind distinguishes a capture-slot write from a register write on the
// shared undo stack — both need the same (index, old value) rollback shape.
type saveKind byte

const (
	saveCapture saveKind = iota
	saveRegister
)

type saveEntry struct {
	kind saveKind
	idx  int
	old  int
}

// Config tunes the backtracker's resource limits, mirroring the teacher's
// meta.Config tunable-with-Validate shape (spec §5 resource model).
type Config struct {
	// InitialStackCapacity sizes the choice-point stack's inline buffer.
	InitialStackCapacity int
	// MaxStackSize caps the choice-point stack (frames), after which Exec
	// returns MemoryError rather than growing further.
	MaxStackSize int
	// StackGrowthFactor is the geometric growth multiplier applied when the
	// choice-point stack fills (spec §4.4: "grow geometrically (x1.5)").
	StackGrowthFactor float64
	// TimeoutCheckInterval is how many choice-point pushes elapse between
	// invocations of the timeout callback.
	TimeoutCheckInterval int
}

// DefaultConfig returns the backtracker's default resource limits.
func DefaultConfig() Config {
	return Config{
		InitialStackCapacity: 64,
		MaxStackSize:         1 << 20,
		StackGrowthFactor:    1.5,
		TimeoutCheckInterval: 10000,
	}
}

// Scratch is the reusable per-thread matching state: choice-point stack,
// capture-rollback undo stack, capture slots, and registers. Spec §5 calls
// for a create_scratch()-style reusable scratch area so repeated searches
// on the same thread avoid reallocating; Scratch is that area, reset and
// reused across Exec calls the way the teacher's BoundedBacktracker reuses
// its visited bit-vector across searches (nfa/backtrack.go's reset).
type Scratch struct {
	cfg Config

	choices []frame
	saves   []saveEntry

	captures  []int // 2*captureCount slots; -1 means unset
	registers []int

	pushes int // choice-point pushes since the last reset; the timeout callback runs at each multiple of TimeoutCheckInterval
}

// NewScratch allocates an empty Scratch with the stack capacities from cfg.
// Its capture and register slots are sized at the start of each Exec call
// to fit the program being run, so one Scratch serves programs of any size.
func NewScratch(cfg Config) *Scratch {
	return &Scratch{
		cfg:     cfg,
		choices: make([]frame, 0, cfg.InitialStackCapacity),
		saves:   make([]saveEntry, 0, cfg.InitialStackCapacity),
	}
}

// reset prepares the scratch for a fresh Exec call against a program with
// the given capture and register counts.
func (s *Scratch) reset(captureCount, registerCount int) {
	need := captureCount * 2
	if cap(s.captures) < need {
		s.captures = make([]int, need)
	} else {
		s.captures = s.captures[:need]
	}
	for i := range s.captures {
		s.captures[i] = -1
	}

	if cap(s.registers) < registerCount {
		s.registers = make([]int, registerCount)
	} else {
		s.registers = s.registers[:registerCount]
		for i := range s.registers {
			s.registers[i] = 0
		}
	}

	s.choices = s.choices[:0]
	s.saves = s.saves[:0]
	s.pushes = 0
}

// Captures returns the capture-slot array populated by the most recent
// successful Exec call: slot 2n is group n's start, 2n+1 its end, -1 if
// unset.
func (s *Scratch) Captures() []int { return s.captures }
