package project

import (
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"tmux-project/pkg/config"
	"tmux-project/pkg/shellwords"
)

func TestInvocation_SocketAndOptions(t *testing.T) {
	p := Default()
	p.TmuxCommand = strPtr("tmux")
	p.TmuxSocket = strPtr("sock")
	p.TmuxOptions = strPtr("-f /x/y -q")

	program, argv, err := p.Invocation(nil)
	if err != nil {
		t.Fatalf("Invocation: %v", err)
	}
	if program != "tmux" {
		t.Errorf("program = %q, want tmux", program)
	}
	want := []string{"-L", "sock", "-f", "/x/y", "-q"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %q, want %q", argv, want)
	}
}

func TestInvocation_TrailingArgs(t *testing.T) {
	p := Default()
	p.TmuxCommand = strPtr("tmux")
	p.TmuxOptions = strPtr("-2")

	_, argv, err := p.Invocation([]string{"new-session", "-d", "-s", "blog"})
	if err != nil {
		t.Fatalf("Invocation: %v", err)
	}
	want := []string{"-2", "new-session", "-d", "-s", "blog"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %q, want %q", argv, want)
	}
}

func TestInvocation_MultiWordCommand(t *testing.T) {
	p := Default().Prepare(config.Config{TmuxCommand: "ssh devbox tmux"}, "blog", nil)
	p.TmuxSocket = strPtr("s")

	program, argv, err := p.Invocation([]string{"ls"})
	if err != nil {
		t.Fatalf("Invocation: %v", err)
	}
	if program != "ssh" {
		t.Errorf("program = %q, want ssh", program)
	}
	want := []string{"devbox", "tmux", "-L", "s", "ls"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %q, want %q", argv, want)
	}
}

func TestInvocation_NoCommand(t *testing.T) {
	_, _, err := Default().Invocation(nil)
	var ae *AssemblyError
	if !errors.As(err, &ae) || ae.Op != "tmux_command" {
		t.Fatalf("Invocation() = %v, want tmux_command AssemblyError", err)
	}
	if !errors.Is(err, ErrNoTmuxCommand) {
		t.Errorf("expected ErrNoTmuxCommand, got %v", err)
	}
}

func TestInvocation_EmptyCommand(t *testing.T) {
	p := Default()
	p.TmuxCommand = strPtr("  ")
	_, _, err := p.Invocation(nil)
	if !errors.Is(err, shellwords.ErrEmptyCommand) {
		t.Errorf("Invocation() = %v, want ErrEmptyCommand", err)
	}
}

func TestInvocation_UnbalancedOptions(t *testing.T) {
	p := Default()
	p.TmuxCommand = strPtr("tmux")
	p.TmuxOptions = strPtr(`-f "/x/y`)

	_, _, err := p.Invocation(nil)
	var ae *AssemblyError
	if !errors.As(err, &ae) || ae.Op != "tmux_options" {
		t.Errorf("Invocation() = %v, want tmux_options AssemblyError", err)
	}
}

func TestInvocationForTemplate(t *testing.T) {
	p := Default()
	p.TmuxCommand = strPtr("tmux")
	p.TmuxOptions = strPtr(`-f "hello world"`)

	got, err := p.InvocationForTemplate()
	if err != nil {
		t.Fatalf("InvocationForTemplate: %v", err)
	}
	if want := "tmux -f 'hello world'"; got != want {
		t.Errorf("InvocationForTemplate() = %q, want %q", got, want)
	}
}

func TestInvocationForTemplate_RoundTrip(t *testing.T) {
	p := Default()
	p.TmuxCommand = strPtr("tmux")
	p.TmuxSocket = strPtr("my sock")
	p.TmuxOptions = strPtr(`-f '/path/with $dollar' "it's" '' '#c' x#y`)

	line, err := p.InvocationForTemplate()
	if err != nil {
		t.Fatalf("InvocationForTemplate: %v", err)
	}

	program, argv, err := p.Invocation(nil)
	if err != nil {
		t.Fatalf("Invocation: %v", err)
	}
	want := append([]string{program}, argv...)
	if words := shSplit(t, line); !reflect.DeepEqual(words, want) {
		t.Errorf("sh re-parse of %q = %q, want %q", line, words, want)
	}
}

func TestInvocationForTemplate_HashWords(t *testing.T) {
	p, err := Decode([]byte("tmux_socket: \"#work\"\ntmux_options: -f '#main.conf'\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p = p.Prepare(config.Config{}, "blog", nil)

	line, err := p.InvocationForTemplate()
	if err != nil {
		t.Fatalf("InvocationForTemplate: %v", err)
	}
	if want := "tmux -L '#work' -f '#main.conf'"; line != want {
		t.Errorf("InvocationForTemplate() = %q, want %q", line, want)
	}
	want := []string{"tmux", "-L", "#work", "-f", "#main.conf"}
	if words := shSplit(t, line); !reflect.DeepEqual(words, want) {
		t.Errorf("sh re-parse of %q = %q, want %q", line, words, want)
	}
}

// shSplit re-parses line with /bin/sh and returns the resulting words.
func shSplit(t *testing.T, line string) []string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out, err := exec.Command("sh", "-c", `eval "set -- $1"; printf '%s\0' "$@"`, "sh", line).Output()
	if err != nil {
		t.Fatalf("sh re-parse of %q: %v", line, err)
	}
	words := strings.Split(string(out), "\x00")
	return words[:len(words)-1]
}

func TestInvocationForTemplate_NoCommand(t *testing.T) {
	if _, err := Default().InvocationForTemplate(); err == nil {
		t.Error("expected error without tmux_command")
	}
}
