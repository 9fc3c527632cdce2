package zepto

import (
	"fmt"
	"reflect"

	"github.com/zepto-lang/zepto/internal/vm"
)

// Marshaller handles conversion between Go and zepto values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a zepto value. Any Go integer or float
// kind becomes a number; beyond that the language only has booleans,
// strings, and none.
func (m *Marshaller) ToValue(val interface{}) (vm.Value, error) {
	if val == nil {
		return vm.NoneVal(), nil
	}

	// Already a runtime value
	if v, ok := val.(vm.Value); ok {
		return v, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return vm.NumberVal(float64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return vm.NumberVal(float64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return vm.NumberVal(v.Float()), nil
	case reflect.Bool:
		return vm.BoolVal(v.Bool()), nil
	case reflect.String:
		return vm.StrVal(v.String()), nil
	default:
		return vm.NoneVal(), fmt.Errorf("unsupported type for conversion: %T", val)
	}
}

// FromValue converts a zepto value to a plain Go value: none to nil, bool
// to bool, number to float64, string to string.
func (m *Marshaller) FromValue(value vm.Value) (interface{}, error) {
	switch value.Type {
	case vm.ValNone:
		return nil, nil
	case vm.ValBool:
		return value.AsBool(), nil
	case vm.ValNumber:
		return value.AsNumber(), nil
	case vm.ValStr:
		return value.AsStr(), nil
	default:
		return nil, fmt.Errorf("unsupported type for conversion: %s", value.TypeName())
	}
}
