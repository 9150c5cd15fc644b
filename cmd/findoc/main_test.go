package main

// Notes:
// - runMain: we test dispatch and exit codes. Document generation itself is
//   covered in generate_test.go.
// - isCommand: we test command name matching.

import (
	"strings"
	"testing"
)

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"generate", true},
		{"serve", true},
		{"doctor", true},
		{"version", true},
		{"help", true},
		{"contrato", false},
		{"garanzia", false},
		{"-o", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isCommand(tt.arg); got != tt.want {
			t.Errorf("isCommand(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestRunMain_Version(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(&fakeRenderer{})
	if code := runMain([]string{"findoc", "version"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d", code)
	}
	if got := stdout.String(); got != "findoc "+Version+"\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunMain_Help(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"general", []string{"findoc", "help"}, "Usage: findoc [command]", ""},
		{"generate", []string{"findoc", "help", "generate"}, "test_<variant>.pdf", ""},
		{"serve", []string{"findoc", "help", "serve"}, "POST /v1/documents/:type", ""},
		{"doctor", []string{"findoc", "help", "doctor"}, "findoc doctor [--json]", ""},
		{"unknown", []string{"findoc", "help", "mutuo"}, "", "Unknown command: mutuo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(&fakeRenderer{})
			if code := runMain(tt.args, env); code != ExitSuccess {
				t.Fatalf("runMain() = %d", code)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_HelpFlag(t *testing.T) {
	t.Parallel()

	r := &fakeRenderer{}
	env, _, _ := testEnv(r)
	if code := runMain([]string{"findoc", "generate", "--help"}, env); code != ExitSuccess {
		t.Errorf("runMain(--help) = %d, want %d", code, ExitSuccess)
	}
	if len(r.calls) != 0 {
		t.Error("--help should not generate")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	quiet := newLogger(&buf, true, false)
	quiet.Warn("hidden")
	quiet.Error("shown")

	verbose := newLogger(&buf, false, true)
	verbose.Debug("timing")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("quiet logger should drop warnings")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "timing") {
		t.Errorf("output = %q, want error and debug lines", out)
	}
}
