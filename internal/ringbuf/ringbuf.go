// Package ringbuf holds the most recent lines of an input stream so that
// the lines preceding a match can be printed as context.
package ringbuf

// Line is one retained input line.
type Line struct {
	Number uint64 `json:"line"`
	Text   string `json:"text"`
}

// ContextBuffer is a fixed-capacity circular buffer of lines.
//
// Capacity is depth+1 because the current line is pushed before it is
// tested, while a match only needs the depth lines before it. A buffer is
// owned by a single scan and is not safe for concurrent use.
type ContextBuffer struct {
	depth int
	slots []Line
	next  int    // slot written by the next Push once the buffer is full
	seen  uint64 // lines pushed so far
}

// New returns a buffer retaining depth lines of context. A negative depth
// is treated as 0, which makes Snapshot always empty.
func New(depth int) *ContextBuffer {
	if depth < 0 {
		depth = 0
	}
	return &ContextBuffer{
		depth: depth,
		slots: make([]Line, 0, depth+1),
	}
}

// Depth is the number of context lines a snapshot can hold.
func (b *ContextBuffer) Depth() int { return b.depth }

// Cap is depth+1.
func (b *ContextBuffer) Cap() int { return cap(b.slots) }

// Len is the number of retained lines, min(Seen, Cap).
func (b *ContextBuffer) Len() int { return len(b.slots) }

// Seen is the total number of lines pushed.
func (b *ContextBuffer) Seen() uint64 { return b.seen }

// Push records a line, overwriting the oldest one once the buffer is full.
func (b *ContextBuffer) Push(number uint64, text string) {
	l := Line{Number: number, Text: text}
	if len(b.slots) < cap(b.slots) {
		b.slots = append(b.slots, l)
	} else {
		b.slots[b.next] = l
	}
	b.next = (b.next + 1) % cap(b.slots)
	b.seen++
}

// Snapshot returns the retained lines that precede the most recently pushed
// one, oldest first. Near the start of a stream fewer than Depth lines are
// returned. The result is a copy and stays valid after further pushes.
func (b *ContextBuffer) Snapshot() []Line {
	n := len(b.slots)
	if n <= 1 {
		return nil
	}
	oldest := 0
	if n == cap(b.slots) {
		oldest = b.next
	}
	out := make([]Line, 0, n-1)
	for i := 0; i < n-1; i++ {
		out = append(out, b.slots[(oldest+i)%n])
	}
	return out
}
