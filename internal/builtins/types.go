package builtins

// BuiltinType represents the primitive types of Tact
type BuiltinType string

const (
	Int     BuiltinType = "Int"
	Bool    BuiltinType = "Bool"
	Address BuiltinType = "Address"
	Cell    BuiltinType = "Cell"
	Slice   BuiltinType = "Slice"
	Builder BuiltinType = "Builder"
	String  BuiltinType = "String"

	StringBuilder BuiltinType = "StringBuilder"
)

// BuiltinTypes contains all valid built-in types
var BuiltinTypes = map[string]bool{
	string(Int):           true,
	string(Bool):          true,
	string(Address):       true,
	string(Cell):          true,
	string(Slice):         true,
	string(Builder):       true,
	string(String):        true,
	string(StringBuilder): true,
}

// IsBuiltinType checks if a type name is a built-in type
func IsBuiltinType(typeName string) bool {
	return BuiltinTypes[typeName]
}

// IsIntegerType checks if a type holds integers. Serialization formats such
// as `Int as uint64` do not change the type.
func IsIntegerType(typeName string) bool {
	return BuiltinType(typeName) == Int
}
