// Package zepto embeds the interpreter in Go programs.
//
//	machine := zepto.New()
//	machine.Set("limit", 10)
//	err := machine.Eval(`var total = limit * 2;`)
//	total, err := machine.Get("total")
//
// A VM keeps its globals between Eval calls, so hosts and scripts share
// state through them.
package zepto

import (
	"fmt"
	"io"
	"os"

	"github.com/zepto-lang/zepto/internal/config"
	"github.com/zepto-lang/zepto/internal/vm"
)

// VM wraps the underlying zepto VM and provides a high-level embedding API.
type VM struct {
	machine    *vm.VM
	marshaller *Marshaller
}

// New creates a new zepto VM instance.
func New() *VM {
	return &VM{
		machine:    vm.New(),
		marshaller: NewMarshaller(),
	}
}

// SetOutput redirects print output, which defaults to stdout.
func (v *VM) SetOutput(w io.Writer) {
	v.machine.Out = w
}

// Eval compiles and runs a piece of zepto source. Globals persist
// between calls.
func (v *VM) Eval(code string) error {
	_, err := v.machine.Interpret(code)
	return err
}

// LoadFile executes a source file, or a compiled program when the path
// ends in the compiled extension.
func (v *VM) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if config.IsCompiledFile(path) {
		prog, err := vm.Deserialize(data)
		if err != nil {
			return err
		}
		return v.machine.Run(prog.Chunk)
	}

	_, err = v.machine.Interpret(string(data))
	return err
}

// Set defines or replaces a global visible to scripts. Scripts update it
// with plain assignment; redeclaring it with var is an error, the same as
// for any defined name.
func (v *VM) Set(name string, val interface{}) error {
	obj, err := v.marshaller.ToValue(val)
	if err != nil {
		return err
	}
	v.machine.SetGlobal(name, obj)
	return nil
}

// Get retrieves a global variable from the VM.
func (v *VM) Get(name string) (interface{}, error) {
	obj, ok := v.machine.GetGlobal(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return v.marshaller.FromValue(obj)
}
