package collections

// HugeLongArray is a page-addressed array of int64 whose total capacity can
// exceed what a single Go slice could hold. Logical index i decomposes into
// page = i >> shift, offset = i & mask; pageSize is a power of two sized so
// each page stays near a 32KiB budget.
type HugeLongArray struct {
	pageShift int
	pageMask  int
	pageSize  int
	pages     [][]int64
	size      int
}

// NewHugeLongArray allocates a HugeLongArray able to hold at least size
// elements, all zero-initialized.
func NewHugeLongArray(size int) (*HugeLongArray, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	pageSize, err := PageSizeFor(PageSize32KB, 8)
	if err != nil {
		return nil, err
	}
	a := &HugeLongArray{
		pageShift: shiftFor(pageSize),
		pageMask:  pageSize - 1,
		pageSize:  pageSize,
	}
	if err := a.growTo(size); err != nil {
		return nil, err
	}
	a.size = size
	return a, nil
}

// Get returns the element at logical index i.
func (a *HugeLongArray) Get(i int) int64 {
	page := PageIndex(i, a.pageShift)
	offset := IndexInPage(i, a.pageMask)
	return a.pages[page][offset]
}

// Set stores v at logical index i.
func (a *HugeLongArray) Set(i int, v int64) {
	page := PageIndex(i, a.pageShift)
	offset := IndexInPage(i, a.pageMask)
	a.pages[page][offset] = v
}

// SetAll fills every element by calling producer(i) for i in [0, size).
func (a *HugeLongArray) SetAll(producer func(i int) int64) {
	for i := 0; i < a.size; i++ {
		a.Set(i, producer(i))
	}
}

// Size returns the number of addressable elements.
func (a *HugeLongArray) Size() int { return a.size }

// Capacity returns numPages * pageSize, always >= Size().
func (a *HugeLongArray) Capacity() int { return len(a.pages) * a.pageSize }

// Release drops all pages and returns the estimated number of bytes freed.
// Subsequent access to the array is undefined after Release.
func (a *HugeLongArray) Release() int {
	freed := len(a.pages) * a.pageSize * 8
	a.pages = nil
	a.size = 0
	return freed
}

// growTo ensures Capacity() >= target, allocating new pages as needed. It
// is not safe for concurrent use; see HugeAtomicGrowingBitSet for a
// concurrent growth strategy.
func (a *HugeLongArray) growTo(target int) error {
	needed, err := NumPages(target, a.pageSize)
	if err != nil {
		return err
	}
	for len(a.pages) < needed {
		a.pages = append(a.pages, make([]int64, a.pageSize))
	}
	if target > a.size {
		a.size = target
	}
	return nil
}

// GrowTo grows the array so Size() >= target, appending new pages as
// needed. Callers that grow the same array from multiple goroutines (e.g.
// an id-map builder allocating batches) must serialize calls themselves —
// this method performs no internal locking, matching the "fair mutex
// entered only by the thread observing a grow is needed" policy described
// for atomic growth (the mutex lives with the caller, not the array).
func (a *HugeLongArray) GrowTo(target int) error {
	return a.growTo(target)
}

// NewCursor returns a stateful cursor over the half-open range [from, to).
func (a *HugeLongArray) NewCursor(from int, to int) *LongCursor {
	c := &LongCursor{array: a, to: to}
	c.SetRange(from, to)
	return c
}

// LongCursor iterates a HugeLongArray range page by page, exposing each
// page's backing slice and the span of valid indices within it, so callers
// avoid recomputing page/offset per element.
type LongCursor struct {
	array    *HugeLongArray
	from, to int
	pageIdx  int

	// Base, Array, Offset, Limit describe the current page span: valid
	// indices are Array[Offset:Limit], corresponding to logical indices
	// [Base+Offset, Base+Limit).
	Base   int
	Array  []int64
	Offset int
	Limit  int
}

// SetRange repositions the cursor over a new half-open range.
func (c *LongCursor) SetRange(from int, to int) {
	c.from = from
	c.to = to
	c.pageIdx = PageIndex(from, c.array.pageShift)
	c.Array = nil
}

// Next advances to the next page span, returning false when exhausted.
func (c *LongCursor) Next() bool {
	if c.from >= c.to {
		return false
	}
	page := c.pageIdx
	c.pageIdx++
	c.Base = page << c.array.pageShift
	startOffset := c.from - c.Base
	endOffset := c.array.pageSize
	if c.to-c.Base < endOffset {
		endOffset = c.to - c.Base
	}
	c.Array = c.array.pages[page]
	c.Offset = startOffset
	c.Limit = endOffset
	c.from = c.Base + endOffset
	return true
}
