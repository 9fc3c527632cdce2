package vm

import (
	"math"
	"testing"
)

func TestValueEquals(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"none == none", NoneVal(), NoneVal(), true},
		{"true == true", BoolVal(true), BoolVal(true), true},
		{"true == false", BoolVal(true), BoolVal(false), false},
		{"1 == 1", NumberVal(1), NumberVal(1), true},
		{"1 == 2", NumberVal(1), NumberVal(2), false},
		{"-0 == 0", NumberVal(math.Copysign(0, -1)), NumberVal(0), true},
		{"str == str", StrVal("abc"), StrVal("abc"), true},
		{"str != str", StrVal("abc"), StrVal("abd"), false},
		{"empty == empty", StrVal(""), StrVal(""), true},
		// Different tags never compare equal.
		{"none != false", NoneVal(), BoolVal(false), false},
		{"none != 0", NoneVal(), NumberVal(0), false},
		{"false != 0", BoolVal(false), NumberVal(0), false},
		{"1 != \"1\"", NumberVal(1), StrVal("1"), false},
		{"true != \"true\"", BoolVal(true), StrVal("true"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.expected {
				t.Errorf("Equals: got=%t, want=%t", got, tt.expected)
			}
			if got := tt.b.Equals(tt.a); got != tt.expected {
				t.Errorf("Equals (flipped): got=%t, want=%t", got, tt.expected)
			}
		})
	}
}

func TestValueIsFalsey(t *testing.T) {
	tests := []struct {
		name     string
		v        Value
		expected bool
	}{
		{"none", NoneVal(), true},
		{"false", BoolVal(false), true},
		{"true", BoolVal(true), false},
		{"zero", NumberVal(0), false},
		{"nonzero", NumberVal(3.5), false},
		{"empty string", StrVal(""), false},
		{"string", StrVal("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFalsey(); got != tt.expected {
				t.Errorf("IsFalsey: got=%t, want=%t", got, tt.expected)
			}
		})
	}
}

func TestValueInspect(t *testing.T) {
	tests := []struct {
		v        Value
		expected string
	}{
		{NoneVal(), "none"},
		{BoolVal(true), "true"},
		{BoolVal(false), "false"},
		{NumberVal(7), "7"},
		{NumberVal(4.5), "4.5"},
		{NumberVal(-0.25), "-0.25"},
		{NumberVal(1e21), "1e+21"},
		{StrVal("hello"), "hello"},
		{StrVal(""), ""},
	}

	for _, tt := range tests {
		if got := tt.v.Inspect(); got != tt.expected {
			t.Errorf("Inspect: got=%q, want=%q", got, tt.expected)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	if got := NumberVal(2.5).AsNumber(); got != 2.5 {
		t.Errorf("AsNumber: got=%f, want=2.5", got)
	}
	if !BoolVal(true).AsBool() {
		t.Error("AsBool: got=false, want=true")
	}
	if got := StrVal("s").AsStr(); got != "s" {
		t.Errorf("AsStr: got=%q, want=%q", got, "s")
	}
	if !NoneVal().IsNone() || NoneVal().IsNumber() {
		t.Error("type predicates disagree for NoneVal")
	}
}
