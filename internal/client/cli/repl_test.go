package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	return f.record("login", args)
}
func (f *fakeExec) Verify(ctx context.Context, args []string) error {
	f.loggedIn = true
	return f.record("verify", args)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Menu(ctx context.Context) error { return f.record("menu", nil) }
func (f *fakeExec) Open(ctx context.Context, args []string) error {
	return f.record("open", args)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login user@example.com",
		"",
		"verify abc",
		"help",
		"whoami",
		"menu",
		"open /merchants",
		"foobar",
		"logout",
		"exit",
		"whoami",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input), false)

	assert.Equal(t, []string{"login", "verify", "whoami", "menu", "open", "logout"}, exec.calls)
	assert.Equal(t, []string{"user@example.com"}, exec.args[0])
	assert.Equal(t, []string{"abc"}, exec.args[1])
	assert.Equal(t, []string{"/merchants"}, exec.args[4])

	assert.Contains(t, (*out)[0], "login [email]")
	assert.Contains(t, (*out)[1], "whoami")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: errors.New("boom")}
	input := strings.NewReader("menu\nwhoami\n")
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input), false)

	assert.Equal(t, []string{"menu", "whoami"}, exec.calls)
	assert.Equal(t, []string{"Error: boom", "Error: boom"}, *out)
}

func TestRunREPL_EOFEndsLoop(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")), false)
	assert.Empty(t, exec.calls)
}
