package nodeprops

import (
	"sync"

	"github.com/graphcore/corestore/pkg/idmap"
)

// DefaultValue supplies both the fallback value assigned to nodes no
// producer ever wrote to, and — when no value was ever written at all —
// the value type to infer.
type DefaultValue struct {
	typ         ValueType
	long        int64
	double      float64
	longArray   []int64
	floatArray  []float32
	doubleArray []float64
}

func DefaultLong(v int64) DefaultValue          { return DefaultValue{typ: Long, long: v} }
func DefaultDouble(v float64) DefaultValue      { return DefaultValue{typ: Double, double: v} }
func DefaultLongArray(v []int64) DefaultValue   { return DefaultValue{typ: LongArray, longArray: v} }
func DefaultFloatArray(v []float32) DefaultValue { return DefaultValue{typ: FloatArray, floatArray: v} }
func DefaultDoubleArray(v []float64) DefaultValue {
	return DefaultValue{typ: DoubleArray, doubleArray: v}
}

// rootIdMapProvider is satisfied by idmap.HighLimitIdMap: property storage
// keys off the denser intermediate id space, not the sparse original one.
type rootIdMapProvider interface {
	RootIdMap() idmap.IdMap
}

// Builder accumulates (originalId, value) pairs for a single node property
// across concurrent producers, inferring the value type from the first
// non-null write and rejecting any later write of a different type.
type Builder struct {
	mu  sync.Mutex
	typ ValueType
	def *DefaultValue

	longs       map[int64]int64
	doubles     map[int64]float64
	longArrays  map[int64][]int64
	floatArrays map[int64][]float32
	doubleArrays map[int64][]float64
}

// NewBuilder creates an empty node-property builder.
func NewBuilder() *Builder {
	return &Builder{typ: Unknown}
}

// SetDefault supplies the fallback value for nodes never explicitly
// written, and the type to infer if no write ever occurs.
func (b *Builder) SetDefault(def DefaultValue) {
	b.mu.Lock()
	b.def = &def
	b.mu.Unlock()
}

func (b *Builder) checkType(t ValueType) error {
	if b.typ == Unknown {
		b.typ = t
		return nil
	}
	if b.typ != t {
		return ErrTypeMismatch
	}
	return nil
}

func (b *Builder) SetLong(originalId, v int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkType(Long); err != nil {
		return err
	}
	if b.longs == nil {
		b.longs = make(map[int64]int64)
	}
	b.longs[originalId] = v
	return nil
}

func (b *Builder) SetDouble(originalId int64, v float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkType(Double); err != nil {
		return err
	}
	if b.doubles == nil {
		b.doubles = make(map[int64]float64)
	}
	b.doubles[originalId] = v
	return nil
}

func (b *Builder) SetLongArray(originalId int64, v []int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkType(LongArray); err != nil {
		return err
	}
	if b.longArrays == nil {
		b.longArrays = make(map[int64][]int64)
	}
	b.longArrays[originalId] = v
	return nil
}

func (b *Builder) SetFloatArray(originalId int64, v []float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkType(FloatArray); err != nil {
		return err
	}
	if b.floatArrays == nil {
		b.floatArrays = make(map[int64][]float32)
	}
	b.floatArrays[originalId] = v
	return nil
}

func (b *Builder) SetDoubleArray(originalId int64, v []float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkType(DoubleArray); err != nil {
		return err
	}
	if b.doubleArrays == nil {
		b.doubleArrays = make(map[int64][]float64)
	}
	b.doubleArrays[originalId] = v
	return nil
}

// Build finalizes the property against idMap. If idMap is a HighLimit
// composition, storage is keyed by its root (intermediate) id map instead
// of the sparse original space. nodeCount sizes the result; values never
// written fall back to the configured default.
func (b *Builder) Build(idMap idmap.IdMap, nodeCount int64) (NodePropertyValues, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	root := idMap
	if provider, ok := idMap.(rootIdMapProvider); ok {
		root = provider.RootIdMap()
	}

	typ := b.typ
	if typ == Unknown {
		if b.def == nil {
			return nil, ErrMissingType
		}
		typ = b.def.typ
	}

	switch typ {
	case Long:
		var fallback int64
		if b.def != nil {
			fallback = b.def.long
		}
		values := make([]int64, nodeCount)
		for i := range values {
			values[i] = fallback
		}
		for original, v := range b.longs {
			if internal := root.ToMappedNodeId(original); internal != idmap.NotFound {
				values[internal] = v
			}
		}
		return &longNodePropertyValues{values: values}, nil

	case Double:
		var fallback float64
		if b.def != nil {
			fallback = b.def.double
		}
		values := make([]float64, nodeCount)
		for i := range values {
			values[i] = fallback
		}
		for original, v := range b.doubles {
			if internal := root.ToMappedNodeId(original); internal != idmap.NotFound {
				values[internal] = v
			}
		}
		return &doubleNodePropertyValues{values: values}, nil

	case LongArray:
		var fallback []int64
		if b.def != nil {
			fallback = b.def.longArray
		}
		values := make([][]int64, nodeCount)
		for i := range values {
			values[i] = fallback
		}
		for original, v := range b.longArrays {
			if internal := root.ToMappedNodeId(original); internal != idmap.NotFound {
				values[internal] = v
			}
		}
		return &longArrayNodePropertyValues{values: values}, nil

	case FloatArray:
		var fallback []float32
		if b.def != nil {
			fallback = b.def.floatArray
		}
		values := make([][]float32, nodeCount)
		for i := range values {
			values[i] = fallback
		}
		for original, v := range b.floatArrays {
			if internal := root.ToMappedNodeId(original); internal != idmap.NotFound {
				values[internal] = v
			}
		}
		return &floatArrayNodePropertyValues{values: values}, nil

	case DoubleArray:
		var fallback []float64
		if b.def != nil {
			fallback = b.def.doubleArray
		}
		values := make([][]float64, nodeCount)
		for i := range values {
			values[i] = fallback
		}
		for original, v := range b.doubleArrays {
			if internal := root.ToMappedNodeId(original); internal != idmap.NotFound {
				values[internal] = v
			}
		}
		return &doubleArrayNodePropertyValues{values: values}, nil
	}

	return nil, ErrMissingType
}
