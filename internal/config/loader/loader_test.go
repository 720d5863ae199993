package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"keyseq.toml", "toml", false},
		{"keyseq.yaml", "yaml", false},
		{"KEYSEQ.YML", "yaml", false},
		{"keyseq.json", "", true},
		{"keyseq", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, err := ForPath(MapFS{}, tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("err = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			got := ""
			switch l.(type) {
			case *TOMLLoader:
				got = "toml"
			case *YAMLLoader:
				got = "yaml"
			}
			if got != tt.want {
				t.Errorf("loader = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFileLoaders(t *testing.T) {
	fsys := MapFS{
		"a.toml": []byte("ignore_capslock = true\nhelp_timeout = \"1500ms\"\nlog_level = \"debug\"\n"),
		"a.yaml": []byte("ignore_capslock: true\nhelp_timeout: 1500ms\nlog_level: debug\n"),
	}
	want := map[string]any{
		"ignore_capslock": true,
		"help_timeout":    "1500ms",
		"log_level":       "debug",
	}
	for _, path := range []string{"a.toml", "a.yaml"} {
		t.Run(path, func(t *testing.T) {
			l, err := ForPath(fsys, path)
			if err != nil {
				t.Fatal(err)
			}
			got, err := l.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMissingFileIsNotAnError(t *testing.T) {
	for _, path := range []string{"missing.toml", "missing.yaml"} {
		l, err := ForPath(MapFS{}, path)
		if err != nil {
			t.Fatal(err)
		}
		got, err := l.Load()
		if err != nil || got != nil {
			t.Errorf("Load(%s) = %v, %v; want nil, nil", path, got, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	fsys := MapFS{
		"bad.toml": []byte("ignore_capslock = \n"),
		"bad.yaml": []byte("a: [1, 2\n"),
	}
	for _, path := range []string{"bad.toml", "bad.yaml"} {
		t.Run(path, func(t *testing.T) {
			l, _ := ForPath(fsys, path)
			_, err := l.Load()
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Path != path || !strings.Contains(err.Error(), path) {
				t.Errorf("ParseError = %v", err)
			}
		})
	}
}

func TestTOMLParseErrorPosition(t *testing.T) {
	_, err := parseTOML("x.toml", []byte("a = 1\nb = \n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestLoadFromReader(t *testing.T) {
	got, err := (&YAMLLoader{}).LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty YAML = %v", got)
	}
	got, err = (&TOMLLoader{}).LoadFromReader(strings.NewReader("log_file = \"x.log\""))
	if err != nil {
		t.Fatal(err)
	}
	if got["log_file"] != "x.log" {
		t.Errorf("log_file = %v", got["log_file"])
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoaderFrom("KEYSEQ_", []string{
		"KEYSEQ_IGNORE_CAPSLOCK=yes",
		"KEYSEQ_HELP_TIMEOUT=250",
		"KEYSEQ_LOG_LEVEL=warn",
		"KEYSEQ_RC_FILE=",
		"KEYSEQ_=ignored",
		"HOME=/root",
		"MALFORMED",
	})
	got, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"ignore_capslock": true,
		"help_timeout":    int64(250),
		"log_level":       "warn",
		"rc_file":         "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	got := Merge(
		map[string]any{"a": 1, "b": 1},
		nil,
		map[string]any{"b": 2, "c": 2},
	)
	want := map[string]any{"a": 1, "b": 2, "c": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge (-want +got):\n%s", diff)
	}
}
