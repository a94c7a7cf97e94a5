package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/kballard/go-shellquote"
)

// Editor is an editor command line, e.g. "code", "nvim" or "emacs -nw"
type Editor string

const (
	EditorCursor Editor = "cursor"
	EditorCode   Editor = "code"
)

// ErrNoEditor is returned when no editor can be found
var ErrNoEditor = errors.New("no editor found (set --editor, RGJUMP_EDITOR, VISUAL or EDITOR)")

// style is how an editor is told where to put the cursor
type style int

const (
	// vim +line file, also used for unknown editors
	stylePlus style = iota
	// code --goto file:line:col
	styleGoto
	// hx file:line:col
	styleSuffix
)

var styles = map[string]style{
	"cursor":  styleGoto,
	"code":    styleGoto,
	"codium":  styleGoto,
	"vim":     stylePlus,
	"vi":      stylePlus,
	"nvim":    stylePlus,
	"view":    stylePlus,
	"nano":    stylePlus,
	"emacs":   stylePlus,
	"micro":   stylePlus,
	"kak":     stylePlus,
	"hx":      styleSuffix,
	"helix":   styleSuffix,
	"subl":    styleSuffix,
	"zed":     styleSuffix,
	"mate":    stylePlus,
	"gedit":   stylePlus,
	"kate":    styleSuffix,
	"notepad": styleSuffix,
}

// terminal editors take over the TTY and are waited for
var terminalEditors = map[string]bool{
	"vim":   true,
	"vi":    true,
	"nvim":  true,
	"view":  true,
	"nano":  true,
	"emacs": true,
	"micro": true,
	"kak":   true,
	"hx":    true,
	"helix": true,
}

// DetectEditor detects which editor is available
func DetectEditor() (Editor, error) {
	// GUI editors with an existing-window story first
	if _, err := exec.LookPath("cursor"); err == nil {
		return EditorCursor, nil
	}
	if _, err := exec.LookPath("code"); err == nil {
		return EditorCode, nil
	}

	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return Editor(v), nil
		}
	}

	return "", ErrNoEditor
}

// Invocation is a resolved editor command
type Invocation struct {
	Name       string
	Args       []string
	Foreground bool // attach to the terminal and wait
}

// Command builds the command that opens file with the cursor on line
// (1-based) and column. reuse asks VS Code style editors for the
// existing window.
func Command(editor Editor, file string, line, column int, reuse bool) (Invocation, error) {
	words, err := shellquote.Split(string(editor))
	if err != nil {
		return Invocation{}, fmt.Errorf("invalid editor command %q: %w", editor, err)
	}
	if len(words) == 0 {
		return Invocation{}, ErrNoEditor
	}
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}

	name := words[0]
	base := baseName(name)
	args := append([]string{}, words[1:]...)

	switch styles[base] {
	case styleGoto:
		if reuse {
			args = append(args, "--reuse-window")
		}
		args = append(args, "--goto", fmt.Sprintf("%s:%d:%d", file, line, column))
	case styleSuffix:
		args = append(args, fmt.Sprintf("%s:%d:%d", file, line, column))
	default:
		args = append(args, "+"+strconv.Itoa(line), file)
	}

	return Invocation{
		Name:       name,
		Args:       args,
		Foreground: terminalEditors[base],
	}, nil
}

// Opener opens search results in an editor
type Opener struct {
	Editor Editor
}

// Open places the cursor on the given 1-based line, column 1.
// The line is the one rg reported, so the editor lands on the match itself.
func (o *Opener) Open(file string, line int) error {
	return OpenFile(o.Editor, file, line, 1)
}

// OpenFile opens a file in the specified editor at the given line and column
func OpenFile(editor Editor, file string, line, column int) error {
	hasExistingInstance := false
	isInEditor := false
	if words, _ := shellquote.Split(string(editor)); len(words) > 0 && styles[baseName(words[0])] == styleGoto {
		hasExistingInstance, _ = findExistingInstance(Editor(baseName(words[0])))
		isInEditor = isRunningInEditor()
	}

	// On macOS the URL scheme reaches an already running Cursor reliably
	if runtime.GOOS == "darwin" && (hasExistingInstance || isInEditor) && editor == EditorCursor {
		absPath, err := filepath.Abs(file)
		if err == nil {
			url := fmt.Sprintf("cursor://file/%s:%d:%d", absPath, line, column)
			if err := exec.Command("open", "-u", url).Run(); err == nil {
				return nil
			}
			// fall back to the CLI
		}
	}

	inv, err := Command(editor, file, line, column, hasExistingInstance || isInEditor)
	if err != nil {
		return err
	}

	cmd := exec.Command(inv.Name, inv.Args...)
	if inv.Foreground {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("editor %s failed: %w", inv.Name, err)
		}
		return nil
	}

	// GUI editors return immediately; don't block on them
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start editor %s: %w", inv.Name, err)
	}
	go cmd.Wait()

	return nil
}

// baseName strips directories and a Windows .exe suffix from a command
func baseName(cmd string) string {
	return strings.TrimSuffix(filepath.Base(cmd), ".exe")
}

// isRunningInEditor checks if the process is running inside Cursor or VS Code terminal
func isRunningInEditor() bool {
	if ipcHook := os.Getenv("VSCODE_IPC_HOOK"); ipcHook != "" {
		if _, err := os.Stat(ipcHook); err == nil {
			return true
		}
		// the env var alone means we were started from the editor
		if strings.HasSuffix(ipcHook, ".sock") {
			return true
		}
	}

	for _, env := range []string{"CURSOR_PID", "VSCODE_PID"} {
		if pid := os.Getenv(env); pid != "" && processExists(pid) {
			return true
		}
	}

	if os.Getenv("CURSOR_AGENT") != "" {
		return true
	}

	if runtime.GOOS != "windows" {
		if ppid := os.Getppid(); ppid > 0 {
			output, err := exec.Command("ps", "-p", strconv.Itoa(ppid), "-o", "comm=").Output()
			if err == nil && contains(strings.TrimSpace(string(output)), "code", "cursor") {
				return true
			}
		}
	}

	return false
}

// findExistingInstance attempts to find an existing Cursor/VS Code instance via IPC
func findExistingInstance(editor Editor) (bool, string) {
	if ipcHook := os.Getenv("VSCODE_IPC_HOOK"); ipcHook != "" {
		if info, err := os.Stat(ipcHook); err == nil && info.Mode()&os.ModeSocket != 0 {
			return true, ipcHook
		}
		if strings.HasSuffix(ipcHook, ".sock") {
			return true, ipcHook
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return false, ""
	}

	var ipcPaths []string
	if editor == EditorCursor {
		ipcPaths = []string{
			filepath.Join(homeDir, "Library", "Application Support", "Cursor", "*.sock"),
			filepath.Join(homeDir, ".cursor", "*.sock"),
		}
	} else {
		ipcPaths = []string{
			filepath.Join(homeDir, "Library", "Application Support", "Code", "*.sock"),
			filepath.Join(homeDir, ".vscode", "*.sock"),
		}
	}

	for _, pattern := range ipcPaths {
		if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
			return true, matches[0]
		}
	}

	return false, ""
}

// processExists checks if a process with the given PID exists
func processExists(pidStr string) bool {
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		// FindProcess opens a handle on Windows, which fails for dead PIDs
		return true
	}
	// Signal 0 checks for existence without delivering anything
	return process.Signal(syscall.Signal(0)) == nil
}

// contains reports whether s contains any of the substrings, case-insensitively
func contains(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
