package nodeprops

import (
	"math"
	"testing"

	"github.com/graphcore/corestore/pkg/idmap"
)

func buildIdMap(t *testing.T, originals ...int64) *idmap.ArrayIdMap {
	t.Helper()
	b, err := idmap.NewBuilder()
	if err != nil {
		t.Fatal(err)
	}
	alloc, err := b.Allocate(int64(len(originals)))
	if err != nil {
		t.Fatal(err)
	}
	if err := alloc.Insert(originals); err != nil {
		t.Fatal(err)
	}
	highest := int64(-1)
	for _, o := range originals {
		if o > highest {
			highest = o
		}
	}
	return b.Build(nil, highest, 1)
}

func TestLongPropertyRoundTrip(t *testing.T) {
	m := buildIdMap(t, 10, 20, 30)
	b := NewBuilder()
	if err := b.SetLong(10, 100); err != nil {
		t.Fatal(err)
	}
	if err := b.SetLong(30, 300); err != nil {
		t.Fatal(err)
	}
	b.SetDefault(DefaultLong(-1))

	values, err := b.Build(m, m.NodeCount())
	if err != nil {
		t.Fatal(err)
	}
	longValues, ok := values.(LongValues)
	if !ok {
		t.Fatalf("expected LongValues, got %T", values)
	}
	if got := longValues.LongValue(m.ToMappedNodeId(10)); got != 100 {
		t.Fatalf("LongValue(10) = %d, want 100", got)
	}
	if got := longValues.LongValue(m.ToMappedNodeId(20)); got != -1 {
		t.Fatalf("unset node should fall back to default, got %d", got)
	}
	if values.Type() != Long {
		t.Fatalf("Type() = %v, want Long", values.Type())
	}
}

func TestTypeMismatchRejected(t *testing.T) {
	b := NewBuilder()
	if err := b.SetLong(1, 5); err != nil {
		t.Fatal(err)
	}
	if err := b.SetDouble(2, 5.0); err != ErrTypeMismatch {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestMissingTypeWithNoValueOrDefault(t *testing.T) {
	m := buildIdMap(t, 1, 2)
	b := NewBuilder()
	if _, err := b.Build(m, m.NodeCount()); err != ErrMissingType {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}
}

func TestDefaultValueInfersTypeWhenNeverWritten(t *testing.T) {
	m := buildIdMap(t, 1, 2)
	b := NewBuilder()
	b.SetDefault(DefaultDouble(3.5))

	values, err := b.Build(m, m.NodeCount())
	if err != nil {
		t.Fatal(err)
	}
	if values.Type() != Double {
		t.Fatalf("Type() = %v, want Double", values.Type())
	}
	dv := values.(DoubleValues)
	if dv.DoubleValue(0) != 3.5 {
		t.Fatalf("DoubleValue(0) = %v, want 3.5", dv.DoubleValue(0))
	}
}

func TestHighLimitIdMapKeysByRoot(t *testing.T) {
	outerBuilder, _ := idmap.NewBuilder()
	outerAlloc, _ := outerBuilder.Allocate(2)
	_ = outerAlloc.Insert([]int64{0, 1})
	root := outerBuilder.Build(nil, 1, 1)

	innerBuilder, _ := idmap.NewBuilder()
	innerAlloc, _ := innerBuilder.Allocate(2)
	_ = innerAlloc.Insert([]int64{5_000_000_000, 8_000_000_000})
	originalToIntermediate := innerBuilder.Build(nil, 8_000_000_000, 1)

	high := idmap.NewHighLimitIdMap(originalToIntermediate, root)

	b := NewBuilder()
	if err := b.SetLong(5_000_000_000, 42); err != nil {
		t.Fatal(err)
	}
	values, err := b.Build(high, high.NodeCount())
	if err != nil {
		t.Fatal(err)
	}
	lv := values.(LongValues)
	if got := lv.LongValue(0); got != 42 {
		t.Fatalf("LongValue(0) = %d, want 42", got)
	}
}

func TestNoOpDoubleCodecRoundTrip(t *testing.T) {
	codec := NoOpDoubleCodec{}
	cases := []float64{0, -0.0, 1.5, -1.5, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, v := range cases {
		encoded := codec.Encode(v)
		if len(encoded) != codec.CompressedSize() {
			t.Fatalf("encoded length %d != CompressedSize() %d", len(encoded), codec.CompressedSize())
		}
		decoded := codec.Decode(encoded)
		if math.IsNaN(v) {
			if !math.IsNaN(decoded) {
				t.Fatalf("NaN did not round-trip: got %v", decoded)
			}
			continue
		}
		if decoded != v || math.Signbit(decoded) != math.Signbit(v) {
			t.Fatalf("round trip failed for %v: got %v", v, decoded)
		}
	}
}
