package clipboard

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// CopiedMsg reports the outcome of Copy
type CopiedMsg struct {
	Text string
	Err  error
}

// Service copies text to the system clipboard
type Service struct {
	command string
	logger  *slog.Logger

	// primary writes through atotto/clipboard, swapped in tests
	primary func(string) error
	run     func(name string, args []string, stdin string) error
}

// NewService creates a clipboard service. command, when set, is used
// whenever the system clipboard cannot be written directly.
func NewService(command string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		command: command,
		logger:  logger,
		primary: clipboard.WriteAll,
		run:     runWithStdin,
	}
}

// Copy returns a command that copies text and reports a CopiedMsg
func (s *Service) Copy(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: s.write(text)}
	}
}

func (s *Service) write(text string) error {
	if text == "" {
		return errors.New("nothing to copy")
	}
	err := s.primary(text)
	if err == nil {
		s.logger.Debug("copied to clipboard", "length", len(text))
		return nil
	}
	s.logger.Warn("system clipboard unavailable, trying fallback", "error", err)

	parts := s.fallback()
	if len(parts) == 0 {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	if err := s.run(parts[0], parts[1:], text); err != nil {
		s.logger.Error("clipboard command failed", "command", parts[0], "error", err)
		return fmt.Errorf("clipboard command %s failed: %w", parts[0], err)
	}
	return nil
}

// fallback picks the configured command, else a platform tool
func (s *Service) fallback() []string {
	if s.command != "" {
		return parseCommand(s.command)
	}
	switch runtime.GOOS {
	case "windows":
		return []string{"clip.exe"}
	case "darwin":
		return []string{"pbcopy"}
	case "linux":
		if isWSL() {
			return []string{"clip.exe"}
		}
		for _, candidate := range [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		} {
			if _, err := exec.LookPath(candidate[0]); err == nil {
				return candidate
			}
		}
	}
	return nil
}

func runWithStdin(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}

// parseCommand splits a command line on spaces, keeping quoted runs together
func parseCommand(command string) []string {
	var parts []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, r := range command {
		switch {
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && r == ' ':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return parts
}

// isWSL reports whether we run under Windows Subsystem for Linux
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}
