package zepto_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zepto-lang/zepto/internal/vm"
	zepto "github.com/zepto-lang/zepto/pkg/embed"
)

func TestEmbedEvalAndGet(t *testing.T) {
	machine := zepto.New()

	if err := machine.Eval(`var total = 6 * 7;`); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}

	got, err := machine.Get("total")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 42.0 {
		t.Errorf("total = %v, want 42", got)
	}
}

func TestEmbedSetVisibleToScript(t *testing.T) {
	machine := zepto.New()

	if err := machine.Set("limit", 10); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := machine.Eval(`var doubled = limit * 2;`); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}

	got, err := machine.Get("doubled")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 20.0 {
		t.Errorf("doubled = %v, want 20", got)
	}
}

func TestEmbedValueConversions(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{"int", 3, 3.0},
		{"int64", int64(4), 4.0},
		{"uint8", uint8(5), 5.0},
		{"float32", float32(2.5), 2.5},
		{"float64", 1.5, 1.5},
		{"bool", true, true},
		{"string", "hi", "hi"},
		{"nil", nil, nil},
	}

	machine := zepto.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := machine.Set("x", tt.in); err != nil {
				t.Fatalf("Set(%v) failed: %v", tt.in, err)
			}
			got, err := machine.Get("x")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("roundtrip = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestEmbedSetUnsupportedType(t *testing.T) {
	machine := zepto.New()
	err := machine.Set("xs", []int{1, 2})
	if err == nil {
		t.Fatal("Set([]int) succeeded, want conversion error")
	}
	if !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("error = %q, want it to mention the unsupported type", err)
	}
}

func TestEmbedOutputCapture(t *testing.T) {
	machine := zepto.New()
	out := &strings.Builder{}
	machine.SetOutput(out)

	if err := machine.Eval(`print("hello" + " " + "zepto");`); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got := out.String(); got != "hello zepto\n" {
		t.Errorf("output = %q, want %q", got, "hello zepto\n")
	}
}

func TestEmbedGlobalsPersistBetweenEvals(t *testing.T) {
	machine := zepto.New()

	if err := machine.Eval(`var n = 1;`); err != nil {
		t.Fatalf("first Eval failed: %v", err)
	}
	if err := machine.Eval(`n = n + 1;`); err != nil {
		t.Fatalf("second Eval failed: %v", err)
	}

	got, err := machine.Get("n")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 2.0 {
		t.Errorf("n = %v, want 2", got)
	}
}

func TestEmbedGetMissing(t *testing.T) {
	machine := zepto.New()
	if _, err := machine.Get("nothing"); err == nil {
		t.Fatal("Get of an undefined global succeeded, want error")
	}
}

func TestEmbedEvalError(t *testing.T) {
	machine := zepto.New()
	err := machine.Eval(`print(missing);`)
	if err == nil {
		t.Fatal("Eval succeeded, want runtime error")
	}
	if !strings.Contains(err.Error(), "Undefined variable 'missing'.") {
		t.Errorf("error = %q, want undefined variable message", err)
	}
}

func TestEmbedLoadSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.zp")
	if err := os.WriteFile(path, []byte(`var fromFile = "ok";`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	machine := zepto.New()
	if err := machine.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	got, err := machine.Get("fromFile")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "ok" {
		t.Errorf("fromFile = %v, want %q", got, "ok")
	}
}

func TestEmbedLoadCompiledFile(t *testing.T) {
	chunk := vm.NewChunk()
	if err := vm.NewCompiler().Compile(`var answer = 40 + 2;`, chunk); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	data, err := vm.NewProgram(chunk, "script.zp").Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "script.zbc")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	machine := zepto.New()
	if err := machine.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	got, err := machine.Get("answer")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 42.0 {
		t.Errorf("answer = %v, want 42", got)
	}
}

func TestEmbedLoadFileMissing(t *testing.T) {
	machine := zepto.New()
	if err := machine.LoadFile(filepath.Join(t.TempDir(), "absent.zp")); err == nil {
		t.Fatal("LoadFile of a missing path succeeded, want error")
	}
}
