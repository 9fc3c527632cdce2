package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zepto-lang/zepto/internal/config"
	"github.com/zepto-lang/zepto/internal/repl"
	"github.com/zepto-lang/zepto/internal/vm"
)

// Exit codes follow sysexits.h so callers can tell bad input from a bad
// interpreter.
const (
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOError      = 74
)

const usage = `Usage: zepto [options] [script]

Run zepto source, compile it to a program file, or start a session.

  zepto                       start an interactive session
  zepto script.zp             compile and run a script
  zepto -c|--compile file.zp  compile to file.zbc
  zepto -r|--run file.zbc     run a compiled program
  zepto --disasm file.zp      print the compiled bytecode, do not run
  zepto --debug file.zp       run a script under the interactive debugger
  zepto -help|--help|help     show this help

Options:
  --trace    log every executed instruction (debug level)
`

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	cfg := loadConfig()

	// --trace is a host flag, not part of the dispatch below: strip it.
	args := make([]string, 0, len(os.Args))
	args = append(args, os.Args[0])
	for _, arg := range os.Args[1:] {
		if arg == "--trace" {
			cfg.Trace = true
			continue
		}
		args = append(args, arg)
	}
	os.Args = args

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.Level())

	if handleHelp() {
		return
	}
	if handleCompile() {
		return
	}
	if handleRunCompiled(cfg) {
		return
	}
	if handleDisasm() {
		return
	}
	if handleDebug(cfg) {
		return
	}

	if len(os.Args) > 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(exitUsage)
	}

	if len(os.Args) == 2 {
		runFile(os.Args[1], cfg)
		return
	}

	// No arguments: piped stdin is a script, a terminal is a session.
	if stdinIsPiped() {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %s\n", err)
			os.Exit(exitIOError)
		}
		runSource(string(source), cfg)
		return
	}

	if err := repl.Start(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// loadConfig picks up zepto.yaml from the working directory or any parent.
// A broken config file is a warning, not a fatal error.
func loadConfig() *config.Config {
	path, err := config.Find(".")
	if err != nil || path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
		return config.Default()
	}
	return cfg
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}

	if os.Args[1] != "-help" && os.Args[1] != "--help" && os.Args[1] != "help" {
		return false
	}

	fmt.Print(usage)
	return true
}

// handleCompile compiles a source file to a program file (.zbc).
func handleCompile() bool {
	if len(os.Args) < 3 {
		return false
	}

	if os.Args[1] != "-c" && os.Args[1] != "--compile" {
		return false
	}

	sourcePath := os.Args[2]
	if !config.IsSourceFile(sourcePath) {
		fmt.Fprintf(os.Stderr, "Error: %s is not a zepto source file\n", sourcePath)
		os.Exit(exitUsage)
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source file: %s\n", err)
		os.Exit(exitIOError)
	}

	chunk := vm.NewChunk()
	if err := vm.NewCompiler().Compile(string(source), chunk); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCompileError)
	}

	prog := vm.NewProgram(chunk, sourcePath)
	data, err := prog.Serialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Serialization error: %s\n", err)
		os.Exit(1)
	}

	outputPath := config.CompiledName(sourcePath)
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing program file: %s\n", err)
		os.Exit(exitIOError)
	}

	fmt.Printf("Compiled %s -> %s\n", sourcePath, outputPath)
	fmt.Printf("Program size: %d bytes\n", len(data))
	return true
}

// handleRunCompiled runs a pre-compiled .zbc program file.
func handleRunCompiled(cfg *config.Config) bool {
	if len(os.Args) < 3 {
		return false
	}

	if os.Args[1] != "-r" && os.Args[1] != "--run" {
		return false
	}

	path := os.Args[2]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading program file: %s\n", err)
		os.Exit(exitIOError)
	}

	prog, err := vm.Deserialize(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program file: %s\n", err)
		os.Exit(exitIOError)
	}
	logrus.Debugf("program %s built %s from %s",
		prog.BuildID, prog.CreatedAt.Format(time.RFC3339), prog.SourceFile)

	machine := vm.New()
	machine.SetTrace(cfg.Trace)
	if err := machine.Run(prog.Chunk); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitRuntimeError)
	}
	return true
}

// handleDisasm prints the compiled form of a script without running it.
func handleDisasm() bool {
	if len(os.Args) < 3 {
		return false
	}

	if os.Args[1] != "--disasm" {
		return false
	}

	sourcePath := os.Args[2]
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source file: %s\n", err)
		os.Exit(exitIOError)
	}

	chunk := vm.NewChunk()
	if err := vm.NewCompiler().Compile(string(source), chunk); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCompileError)
	}

	fmt.Print(vm.Disassemble(chunk, filepath.Base(sourcePath)))
	return true
}

// handleDebug runs a script under the interactive debugger.
func handleDebug(cfg *config.Config) bool {
	if len(os.Args) < 3 {
		return false
	}

	if os.Args[1] != "--debug" {
		return false
	}

	sourcePath := os.Args[2]
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source file: %s\n", err)
		os.Exit(exitIOError)
	}

	machine := vm.New()
	machine.SetTrace(cfg.Trace)
	vm.NewDebuggerCLI(machine, os.Stdin, os.Stdout)
	runOn(machine, string(source))
	return true
}

func runFile(path string, cfg *config.Config) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		os.Exit(exitIOError)
	}
	runSource(string(source), cfg)
}

// runSource interprets one script. The disassemble setting needs no
// handling here: compilation dumps the chunk to the debug log, and
// cfg.Level() has already lifted the log level to make that visible.
func runSource(source string, cfg *config.Config) {
	machine := vm.New()
	machine.SetTrace(cfg.Trace)
	runOn(machine, source)
}

// runOn interprets a whole script and exits non-zero when it fails.
// Diagnostics carry their own line information, so they print bare.
func runOn(machine *vm.VM, source string) {
	result, err := machine.Interpret(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	switch result {
	case vm.INTERPRET_COMPILE_ERROR:
		os.Exit(exitCompileError)
	case vm.INTERPRET_RUNTIME_ERROR:
		os.Exit(exitRuntimeError)
	}
}

func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
