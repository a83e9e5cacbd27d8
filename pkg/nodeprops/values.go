package nodeprops

// ValueType is the type a node-property builder infers from its first
// non-null write.
type ValueType int

const (
	// Unknown marks a builder that has received no writes and no default.
	Unknown ValueType = iota
	Long
	Double
	LongArray
	FloatArray
	DoubleArray
)

func (t ValueType) String() string {
	switch t {
	case Long:
		return "LONG"
	case Double:
		return "DOUBLE"
	case LongArray:
		return "LONG_ARRAY"
	case FloatArray:
		return "FLOAT_ARRAY"
	case DoubleArray:
		return "DOUBLE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// NodePropertyValues is the read-only, built view of one property over
// every internal node id. Callers type-assert to the accessor interface
// matching Type().
type NodePropertyValues interface {
	Type() ValueType
	NodeCount() int64
}

// LongValues is implemented by NodePropertyValues of type Long.
type LongValues interface {
	LongValue(node int64) int64
}

// DoubleValues is implemented by NodePropertyValues of type Double.
type DoubleValues interface {
	DoubleValue(node int64) float64
}

// LongArrayValues is implemented by NodePropertyValues of type LongArray.
type LongArrayValues interface {
	LongArrayValue(node int64) []int64
}

// FloatArrayValues is implemented by NodePropertyValues of type FloatArray.
type FloatArrayValues interface {
	FloatArrayValue(node int64) []float32
}

// DoubleArrayValues is implemented by NodePropertyValues of type DoubleArray.
type DoubleArrayValues interface {
	DoubleArrayValue(node int64) []float64
}

type longNodePropertyValues struct{ values []int64 }

func (v *longNodePropertyValues) Type() ValueType      { return Long }
func (v *longNodePropertyValues) NodeCount() int64     { return int64(len(v.values)) }
func (v *longNodePropertyValues) LongValue(n int64) int64 { return v.values[n] }

type doubleNodePropertyValues struct{ values []float64 }

func (v *doubleNodePropertyValues) Type() ValueType          { return Double }
func (v *doubleNodePropertyValues) NodeCount() int64         { return int64(len(v.values)) }
func (v *doubleNodePropertyValues) DoubleValue(n int64) float64 { return v.values[n] }

type longArrayNodePropertyValues struct{ values [][]int64 }

func (v *longArrayNodePropertyValues) Type() ValueType  { return LongArray }
func (v *longArrayNodePropertyValues) NodeCount() int64 { return int64(len(v.values)) }
func (v *longArrayNodePropertyValues) LongArrayValue(n int64) []int64 { return v.values[n] }

type floatArrayNodePropertyValues struct{ values [][]float32 }

func (v *floatArrayNodePropertyValues) Type() ValueType  { return FloatArray }
func (v *floatArrayNodePropertyValues) NodeCount() int64 { return int64(len(v.values)) }
func (v *floatArrayNodePropertyValues) FloatArrayValue(n int64) []float32 { return v.values[n] }

type doubleArrayNodePropertyValues struct{ values [][]float64 }

func (v *doubleArrayNodePropertyValues) Type() ValueType  { return DoubleArray }
func (v *doubleArrayNodePropertyValues) NodeCount() int64 { return int64(len(v.values)) }
func (v *doubleArrayNodePropertyValues) DoubleArrayValue(n int64) []float64 { return v.values[n] }
