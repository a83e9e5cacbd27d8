package collections

// HugeIntArray is the int32 counterpart to HugeLongArray, used for values
// that are known to fit in 32 bits (e.g. degrees, small counters) where
// halving the per-element footprint matters at scale.
type HugeIntArray struct {
	pageShift int
	pageMask  int
	pageSize  int
	pages     [][]int32
	size      int
}

// NewHugeIntArray allocates a HugeIntArray able to hold at least size
// elements, all zero-initialized.
func NewHugeIntArray(size int) (*HugeIntArray, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	pageSize, err := PageSizeFor(PageSize32KB, 4)
	if err != nil {
		return nil, err
	}
	a := &HugeIntArray{
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
func (a *HugeIntArray) Get(i int) int32 {
	page := PageIndex(i, a.pageShift)
	offset := IndexInPage(i, a.pageMask)
	return a.pages[page][offset]
}

// Set stores v at logical index i.
func (a *HugeIntArray) Set(i int, v int32) {
	page := PageIndex(i, a.pageShift)
	offset := IndexInPage(i, a.pageMask)
	a.pages[page][offset] = v
}

// SetAll fills every element by calling producer(i) for i in [0, size).
func (a *HugeIntArray) SetAll(producer func(i int) int32) {
	for i := 0; i < a.size; i++ {
		a.Set(i, producer(i))
	}
}

// Size returns the number of addressable elements.
func (a *HugeIntArray) Size() int { return a.size }

// Capacity returns numPages * pageSize, always >= Size().
func (a *HugeIntArray) Capacity() int { return len(a.pages) * a.pageSize }

// Release drops all pages and returns the estimated number of bytes freed.
func (a *HugeIntArray) Release() int {
	freed := len(a.pages) * a.pageSize * 4
	a.pages = nil
	a.size = 0
	return freed
}

func (a *HugeIntArray) growTo(target int) error {
	needed, err := NumPages(target, a.pageSize)
	if err != nil {
		return err
	}
	for len(a.pages) < needed {
		a.pages = append(a.pages, make([]int32, a.pageSize))
	}
	return nil
}

// NewCursor returns a stateful cursor over the half-open range [from, to).
func (a *HugeIntArray) NewCursor(from int, to int) *IntCursor {
	c := &IntCursor{array: a}
	c.SetRange(from, to)
	return c
}

// IntCursor is the int32 counterpart to LongCursor.
type IntCursor struct {
	array    *HugeIntArray
	from, to int
	pageIdx  int

	Base   int
	Array  []int32
	Offset int
	Limit  int
}

// SetRange repositions the cursor over a new half-open range.
func (c *IntCursor) SetRange(from int, to int) {
	c.from = from
	c.to = to
	c.pageIdx = PageIndex(from, c.array.pageShift)
	c.Array = nil
}

// Next advances to the next page span, returning false when exhausted.
func (c *IntCursor) Next() bool {
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
