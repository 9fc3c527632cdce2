package config

import "strings"

const SourceFileExt = ".zp"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".zp", ".zepto"}

// CompiledFileExt is the extension for compiled bytecode programs.
const CompiledFileExt = ".zbc"

// IsSourceFile reports whether name has a recognized source extension.
func IsSourceFile(name string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsCompiledFile reports whether name looks like a compiled program.
func IsCompiledFile(name string) bool {
	return strings.HasSuffix(name, CompiledFileExt)
}

// TrimSourceExt strips a recognized source extension for display.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// CompiledName derives the output path for a compiled program from its
// source path: hello.zp becomes hello.zbc.
func CompiledName(source string) string {
	return TrimSourceExt(source) + CompiledFileExt
}
