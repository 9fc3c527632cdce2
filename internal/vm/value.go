package vm

import (
	"math"
	"strconv"
)

// ValueType identifies the variant stored in a Value.
type ValueType uint8

const (
	ValNone ValueType = iota
	ValBool
	ValNumber
	ValStr
)

// Value is a stack-allocated tagged union. Numbers and booleans live in
// Data (float64 bits, or 0/1); strings are immutable and carried in Str.
type Value struct {
	Type ValueType
	Data uint64
	Str  string
}

// Constructors

func NoneVal() Value {
	return Value{Type: ValNone}
}

func BoolVal(v bool) Value {
	var data uint64
	if v {
		data = 1
	}
	return Value{Type: ValBool, Data: data}
}

func NumberVal(v float64) Value {
	return Value{Type: ValNumber, Data: math.Float64bits(v)}
}

func StrVal(s string) Value {
	return Value{Type: ValStr, Str: s}
}

// Accessors

func (v Value) AsBool() bool {
	return v.Data == 1
}

func (v Value) AsNumber() float64 {
	return math.Float64frombits(v.Data)
}

func (v Value) AsStr() string {
	return v.Str
}

// Type checking helpers

func (v Value) IsNone() bool   { return v.Type == ValNone }
func (v Value) IsBool() bool   { return v.Type == ValBool }
func (v Value) IsNumber() bool { return v.Type == ValNumber }
func (v Value) IsStr() bool    { return v.Type == ValStr }

// Equals is total: values of different types are never equal, None equals
// None, strings compare by content, numbers by IEEE-754 `==`.
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ValNone:
		return true
	case ValBool:
		return v.Data == other.Data
	case ValNumber:
		return v.AsNumber() == other.AsNumber()
	case ValStr:
		return v.Str == other.Str
	default:
		return false
	}
}

// IsFalsey reports whether the value is none or false. Everything else,
// including 0 and the empty string, is truthy.
func (v Value) IsFalsey() bool {
	return v.Type == ValNone || (v.Type == ValBool && v.Data == 0)
}

// Inspect returns the display form used by print and the disassembler.
func (v Value) Inspect() string {
	switch v.Type {
	case ValNone:
		return "none"
	case ValBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case ValNumber:
		return strconv.FormatFloat(v.AsNumber(), 'g', -1, 64)
	case ValStr:
		return v.Str
	default:
		return "none"
	}
}

// TypeName returns the variant name used in runtime error messages.
func (v Value) TypeName() string {
	switch v.Type {
	case ValNone:
		return "none"
	case ValBool:
		return "bool"
	case ValNumber:
		return "number"
	case ValStr:
		return "string"
	default:
		return "unknown"
	}
}
