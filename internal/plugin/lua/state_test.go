package lua

import (
	"context"
	"errors"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestEval(t *testing.T) {
	s := NewState()
	defer s.Close()
	ctx := context.Background()

	tests := []struct {
		code string
		want string
	}{
		{"1 + 2", "3"},
		{"x = 5", ""},
		{"x", "5"},
		{"x, 'a'", "5\ta"},
		{"string.upper('abc')", "ABC"},
		{"io", "nil"},
		{"os", "nil"},
		{"dofile", "nil"},
		{"loadstring", "nil"},
	}
	for _, tt := range tests {
		got, err := s.Eval(ctx, nil, tt.code)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tt.code, err)
		}
		if got != tt.want {
			t.Errorf("Eval(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestEvalSyntaxError(t *testing.T) {
	s := NewState()
	defer s.Close()
	if _, err := s.Eval(context.Background(), nil, "1 +"); err == nil {
		t.Error("Eval accepted invalid code")
	}
}

func TestRequireWhitelist(t *testing.T) {
	s := NewState()
	defer s.Close()
	ctx := context.Background()

	if err := s.DoString(ctx, nil, `local m = require("math"); assert(m.floor(1.5) == 1)`); err != nil {
		t.Errorf("require(math): %v", err)
	}
	for _, mod := range []string{"os", "io", "debug"} {
		if err := s.DoString(ctx, nil, `require("`+mod+`")`); err == nil {
			t.Errorf("require(%q) succeeded", mod)
		}
	}
}

func TestExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	start := time.Now()
	if err := s.DoString(context.Background(), nil, "while true do end"); err == nil {
		t.Fatal("infinite loop returned nil")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout not enforced")
	}
}

func TestCallGlobal(t *testing.T) {
	s := NewState()
	defer s.Close()
	ctx := context.Background()

	if err := s.DoString(ctx, nil, "function add(a, b) return a + b, 'ok' end"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Call(ctx, "add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != glua.LNumber(5) || got[1] != glua.LString("ok") {
		t.Errorf("Call = %v", got)
	}
	if _, err := s.Call(ctx, "missing"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(missing) = %v, want ErrNotFunction", err)
	}
}

func TestClosedState(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed = false")
	}
	if _, err := s.Eval(context.Background(), nil, "1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Eval after Close = %v", err)
	}
	if v := s.GetGlobal("string"); v != glua.LNil {
		t.Errorf("GetGlobal after Close = %v", v)
	}
}
