package comet

// Ring tracks the occupied slots of a fixed size circular buffer. It holds
// indices only; the caller owns the backing array.
type Ring struct {
	size  int
	start int
	count int
}

func (r *Ring) Init(size int) {
	r.size = size
	r.start = 0
	r.count = 0
}

func (r *Ring) Full() bool {
	return r.count == r.size
}

func (r *Ring) Empty() bool {
	return r.count == 0
}

func (r *Ring) Len() int {
	return r.count
}

// NextRead is the slot of the oldest entry.
func (r *Ring) NextRead() int {
	return r.start
}

// NextWrite is the slot the next entry goes to.
func (r *Ring) NextWrite() int {
	return (r.start + r.count) % r.size
}

// Index maps the i-th entry, counted from the oldest, to its slot.
func (r *Ring) Index(i int) int {
	return (r.start + i) % r.size
}

// Read drops the oldest entry.
func (r *Ring) Read() {
	r.start = (r.start + 1) % r.size
	r.count--
}

// Write commits the slot returned by NextWrite. The caller checks Full
// first; a full ring is not overwritten.
func (r *Ring) Write() {
	if r.count < r.size {
		r.count++
	}
}
