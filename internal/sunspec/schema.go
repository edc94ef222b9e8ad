package sunspec

import "fmt"

// DecodeType selects how raw register words are turned into a value.
type DecodeType string

const (
	DecodeString    DecodeType = "string"
	DecodeInt32     DecodeType = "int32"
	DecodeFloat     DecodeType = "float"
	DecodeFloat2    DecodeType = "float2"
	DecodeIPAddress DecodeType = "ipaddress"
	DecodeHex4      DecodeType = "hex4"
	DecodeUHex4     DecodeType = "uhex4"
	DecodeHex8      DecodeType = "hex8"
	DecodeRaw       DecodeType = "raw"
)

// Valid reports whether d is one of the known decode types.
func (d DecodeType) Valid() bool {
	switch d {
	case DecodeString, DecodeInt32, DecodeFloat, DecodeFloat2, DecodeIPAddress,
		DecodeHex4, DecodeUHex4, DecodeHex8, DecodeRaw:
		return true
	}
	return false
}

// ValueKind is the SunSpec point type of a field.
type ValueKind string

const (
	KindUint16      ValueKind = "UINT16"
	KindInt16       ValueKind = "INT16"
	KindUint32      ValueKind = "UINT32"
	KindInt32       ValueKind = "INT32"
	KindString      ValueKind = "STRING"
	KindEnumerated  ValueKind = "ENUMERATED_U"
	KindBitfield16  ValueKind = "BITFIELD16"
	KindBitfield32  ValueKind = "BITFIELD32"
	KindScaleFactor ValueKind = "SUNSSF"
	KindIPAddress   ValueKind = "IPADDR"
)

// Access is the read/write mode of a field.
type Access string

const (
	AccessRead      Access = "R"
	AccessReadWrite Access = "RW"
)

// FieldDescriptor describes one logical register inside a model block.
type FieldDescriptor struct {
	Offset uint16     `json:"offset" yaml:"offset"`
	Length uint16     `json:"length" yaml:"length"`
	Decode DecodeType `json:"decode" yaml:"decode"`
	Kind   ValueKind  `json:"kind" yaml:"kind"`
	Units  string     `json:"units,omitempty" yaml:"units,omitempty"`
	Access Access     `json:"access" yaml:"access"`
	Name   string     `json:"name" yaml:"name"`
}

// Address returns the physical register address of the field for a block at base.
func (f FieldDescriptor) Address(base uint16) uint16 {
	return base + f.Offset - 1
}

// Writable reports whether the field may be written.
func (f FieldDescriptor) Writable() bool {
	return f.Access == AccessReadWrite
}

func (f FieldDescriptor) validate() error {
	if f.Name == "" {
		return fmt.Errorf("field at offset %d has no name", f.Offset)
	}
	if f.Offset == 0 {
		return fmt.Errorf("field %s: offsets are 1-based", f.Name)
	}
	if f.Length == 0 {
		return fmt.Errorf("field %s: zero length", f.Name)
	}
	if !f.Decode.Valid() {
		return fmt.Errorf("field %s: unknown decode type %q", f.Name, f.Decode)
	}
	switch f.Decode {
	case DecodeInt32, DecodeHex8:
		if f.Length < 2 {
			return fmt.Errorf("field %s: %s needs 2 registers", f.Name, f.Decode)
		}
	}
	return nil
}

// ro and rw are shorthands for the static tables.
func ro(offset, length uint16, decode DecodeType, kind ValueKind, units, name string) FieldDescriptor {
	return FieldDescriptor{
		Offset: offset,
		Length: length,
		Decode: decode,
		Kind:   kind,
		Units:  units,
		Access: AccessRead,
		Name:   name,
	}
}

func rw(offset, length uint16, decode DecodeType, kind ValueKind, units, name string) FieldDescriptor {
	fd := ro(offset, length, decode, kind, units, name)
	fd.Access = AccessReadWrite
	return fd
}
