package hostapi

// KnownClass enumerates the built-in classes spec §4.6 step 1 dispatches on
// before attempting declaration resolution: typed arrays, Date, Promise,
// ArrayBuffer, Set, and Map. The primitive wrapper classes are not among them.
type KnownClass int

const (
	KnownClassDate KnownClass = iota
	KnownClassPromise
	KnownClassArrayBuffer
	KnownClassInt8Array
	KnownClassUint8Array
	KnownClassUint8ClampedArray
	KnownClassInt16Array
	KnownClassUint16Array
	KnownClassInt32Array
	KnownClassUint32Array
	KnownClassFloat32Array
	KnownClassFloat64Array
	KnownClassBigInt64Array
	KnownClassBigUint64Array
	KnownClassSet
	KnownClassMap
)

// KnownClasses maps a bare identifier name to its KnownClass, when it names
// one of the built-ins spec §4.6 step 1 handles directly instead of falling
// through to declaration resolution.
var KnownClasses = map[string]KnownClass{
	"Date":              KnownClassDate,
	"Promise":           KnownClassPromise,
	"ArrayBuffer":       KnownClassArrayBuffer,
	"Int8Array":         KnownClassInt8Array,
	"Uint8Array":        KnownClassUint8Array,
	"Uint8ClampedArray": KnownClassUint8ClampedArray,
	"Int16Array":        KnownClassInt16Array,
	"Uint16Array":       KnownClassUint16Array,
	"Int32Array":        KnownClassInt32Array,
	"Uint32Array":       KnownClassUint32Array,
	"Float32Array":      KnownClassFloat32Array,
	"Float64Array":      KnownClassFloat64Array,
	"BigInt64Array":     KnownClassBigInt64Array,
	"BigUint64Array":    KnownClassBigUint64Array,
	"Set":               KnownClassSet,
	"Map":               KnownClassMap,
}

// NumberBrands maps a numeric-brand identifier (spec §4.6 step 2) to the
// integer operand of the `numberBrand` op.
var NumberBrands = map[string]int{
	"integer": 0,
	"int8":    1,
	"int16":   2,
	"int32":   3,
	"uint8":   4,
	"uint16":  5,
	"uint32":  6,
	"float32": 7,
	"float64": 8,
}
