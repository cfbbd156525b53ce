package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

const helperEnv = "DESKTOP_AI_LAUNCHER_HELPER"

// TestHelperProcess не тест: его запускает run как дочерний процесс.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "no exit code")
		os.Exit(2)
	}
	if args[1] == "sleep" {
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	code, err := strconv.Atoi(args[1])
	if err != nil {
		os.Exit(2)
	}
	os.Exit(code)
}

func helperArgs(arg string) []string {
	return []string{"-test.run=TestHelperProcess", "--", arg}
}

func TestRunMirrorsExitCode(t *testing.T) {
	t.Setenv(helperEnv, "1")

	for _, want := range []int{0, 3, 42} {
		got, err := run(context.Background(), os.Args[0], helperArgs(strconv.Itoa(want)))
		if err != nil {
			t.Fatalf("run(%d): %v", want, err)
		}
		if got != want {
			t.Errorf("exit code = %d, want %d", got, want)
		}
	}
}

func TestRunMissingExecutable(t *testing.T) {
	code, err := run(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	if err == nil {
		t.Fatal("run() of a missing executable succeeded")
	}
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunCancelStopsChild(t *testing.T) {
	t.Setenv(helperEnv, "1")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	code, _ := run(ctx, os.Args[0], helperArgs("sleep"))
	if elapsed := time.Since(start); elapsed > stopTimeout+5*time.Second {
		t.Fatalf("child ran for %v after cancel", elapsed)
	}
	if code == 0 {
		t.Fatal("cancelled child reported success")
	}
}

func TestChildArgs(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, GUIFlag},
		{[]string{"--hidden", "extra"}, GUIFlag + " --hidden extra"},
		{[]string{GUIFlag, "--debug"}, GUIFlag + " --debug"},
	}
	for _, tt := range tests {
		if got := strings.Join(childArgs(tt.in), " "); got != tt.want {
			t.Errorf("childArgs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
