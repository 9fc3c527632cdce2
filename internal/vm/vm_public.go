package vm

// Host-facing accessors used by the embedding API in pkg/embed.

// GetGlobal reads a global by name.
func (vm *VM) GetGlobal(name string) (Value, bool) {
	v, ok := vm.globals[name]
	return v, ok
}

// SetGlobal creates or replaces a global from the host side. Scripts see
// the name as already defined, so they update it with plain assignment.
func (vm *VM) SetGlobal(name string, value Value) {
	vm.globals[name] = value
}

// GetDebugger returns the debugger instance
func (vm *VM) GetDebugger() *Debugger {
	return vm.debugger
}

// EnableDebugger enables debugging
func (vm *VM) EnableDebugger() {
	if vm.debugger != nil {
		vm.debugger.Enabled = true
	}
}

// DisableDebugger disables debugging and lets the program run out
func (vm *VM) DisableDebugger() {
	if vm.debugger != nil {
		vm.debugger.Detach()
	}
}
