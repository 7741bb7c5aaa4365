package input

// Key identifies the keys the frame loop reads each frame.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeySpace
	KeyL
	KeyT
	KeyC
	KeyEscape
	keyCount
)

// Snapshot is the state of every input source sampled once at frame start.
// Scroll is the wheel offset accumulated since the previous snapshot.
type Snapshot struct {
	Keys      [keyCount]bool
	CursorX   float64
	CursorY   float64
	MouseDown bool
	ScrollY   float64

	Width, Height int
}

func (s Snapshot) Pressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return s.Keys[k]
}

// Edge latches a level signal and reports rising transitions.
type Edge struct {
	prev bool
}

func (e *Edge) Rising(now bool) bool {
	rising := now && !e.prev
	e.prev = now
	return rising
}
