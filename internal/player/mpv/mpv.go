package mpv

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/diniamo/gopv"

	"github.com/justchokingaround/reel/internal/player"
)

const quitTimeout = 500 * time.Millisecond

// Config tunes how mpv is launched
type Config struct {
	// Path overrides the executable looked up in PATH
	Path           string
	Args           []string
	LoadUserConfig bool
	Debug          bool
	Logger         *slog.Logger
}

// Sink plays media in an external mpv process controlled over IPC. Each Load
// starts a fresh process; Clear quits it.
type Sink struct {
	mu sync.Mutex

	cfg        Config
	platform   Platform
	executable string

	cmd    *exec.Cmd
	client *gopv.Client
	ipc    *IPCConfig
	exited chan struct{}
}

// New verifies mpv can be found and returns an idle sink
func New(cfg Config) (*Sink, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	platform := DetectPlatform()

	executable := cfg.Path
	if executable == "" {
		path, err := FindMPVExecutable(platform)
		if err != nil {
			return nil, fmt.Errorf("mpv not found: %w", err)
		}
		executable = path
	} else if _, err := exec.LookPath(executable); err != nil {
		return nil, fmt.Errorf("mpv not found at %s: %w", executable, err)
	}

	return &Sink{cfg: cfg, platform: platform, executable: executable}, nil
}

// Load starts mpv on media.URL with every track attached and waits until
// the IPC connection is up
func (s *Sink) Load(ctx context.Context, media player.Media) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()

	ipc, err := GetIPCConfig(s.platform)
	if err != nil {
		return fmt.Errorf("failed to generate IPC config: %w", err)
	}

	cmd := exec.Command(s.executable, buildArgs(ipc, media, s.cfg)...)
	// mpv must not touch the terminal the TUI is drawing on
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	setupProcessAttributes(cmd)

	if err := cmd.Start(); err != nil {
		removeSocket(ipc)
		return fmt.Errorf("failed to start %s: %w", s.executable, err)
	}

	exited := make(chan struct{})
	go func() {
		err := cmd.Wait()
		s.cfg.Logger.Debug("mpv exited", "pid", cmd.Process.Pid, "error", err)
		close(exited)
	}()

	if err := waitForIPC(ctx, ipc, exited); err != nil {
		_ = cmd.Process.Kill()
		removeSocket(ipc)
		return err
	}

	client, err := gopv.Connect(GetGopvConnectionString(ipc), func(err error) {
		s.cfg.Logger.Debug("mpv ipc error", "error", err)
	})
	if err != nil {
		_ = cmd.Process.Kill()
		removeSocket(ipc)
		return fmt.Errorf("failed to connect to mpv IPC at %s: %w", ipc.Address, err)
	}

	if version, err := client.Request("get_property", "mpv-version"); err == nil {
		s.cfg.Logger.Debug("connected to mpv", "version", version, "tracks", len(media.Tracks))
	}

	s.watch(client, media)

	s.cmd = cmd
	s.client = client
	s.ipc = ipc
	s.exited = exited
	return nil
}

// watch selects the default subtitle once mpv has attached it and logs the
// end of playback
func (s *Sink) watch(client *gopv.Client, media player.Media) {
	logger := s.cfg.Logger
	client.RegisterListener("end-file", func(data map[string]any) {
		if data == nil {
			return
		}
		logger.Debug("mpv playback ended", "reason", data["reason"])
	})

	url := defaultTrackURL(media.Tracks)
	if url == "" {
		return
	}
	var once sync.Once
	_, err := client.ObserveProperty("track-list", func(value any) {
		id, ok := externalSubID(value, url)
		if !ok {
			return
		}
		once.Do(func() {
			if _, err := client.Request("set_property", "sid", id); err != nil {
				logger.Warn("failed to select default subtitle", "id", id, "error", err)
				return
			}
			logger.Debug("selected default subtitle", "id", id)
		})
	})
	if err != nil {
		logger.Debug("failed to observe mpv track list", "error", err)
	}
}

func defaultTrackURL(tracks []player.Track) string {
	for _, t := range tracks {
		if t.Default {
			return t.URL
		}
	}
	return ""
}

// externalSubID finds the mpv track id of the subtitle loaded from url in an
// mpv "track-list" property value
func externalSubID(trackList any, url string) (int, bool) {
	entries, ok := trackList.([]any)
	if !ok {
		return 0, false
	}
	for _, entry := range entries {
		track, ok := entry.(map[string]any)
		if !ok || track["type"] != "sub" || track["external-filename"] != url {
			continue
		}
		if id, ok := track["id"].(float64); ok {
			return int(id), true
		}
	}
	return 0, false
}

// Clear quits the running mpv, if any
func (s *Sink) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	return nil
}

// Running reports whether an mpv process is alive
func (s *Sink) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exited == nil {
		return false
	}
	select {
	case <-s.exited:
		return false
	default:
		return true
	}
}

func (s *Sink) clearLocked() {
	if s.client != nil {
		client := s.client
		done := make(chan struct{})
		go func() {
			_, _ = client.Request("quit")
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(quitTimeout):
		}
		// gopv closes the client itself once mpv drops the connection
		s.client = nil
	}

	if s.cmd != nil && s.cmd.Process != nil && s.exited != nil {
		select {
		case <-s.exited:
		default:
			_ = s.cmd.Process.Kill()
		}
	}
	s.cmd = nil
	s.exited = nil

	removeSocket(s.ipc)
	s.ipc = nil
}

func removeSocket(ipc *IPCConfig) {
	if ipc != nil && ipc.IsSocket {
		_ = os.Remove(ipc.Address)
	}
}

// buildArgs returns the mpv command line. The source URL comes last.
func buildArgs(ipc *IPCConfig, media player.Media, cfg Config) []string {
	args := []string{
		GetMPVIPCArgument(ipc),
		"--no-ytdl",
	}

	if !cfg.LoadUserConfig {
		args = append(args, "--no-config")
	}
	if !cfg.Debug {
		args = append(args, "--msg-level=all=warn")
	}
	if media.Title != "" {
		args = append(args, fmt.Sprintf("--force-media-title=%s", media.Title))
	}

	// the default track goes first so mpv selects it
	for _, t := range media.Tracks {
		if t.Default {
			args = append(args, fmt.Sprintf("--sub-file=%s", t.URL))
			if t.LanguageCode != "" && t.LanguageCode != "unknown" {
				args = append(args, fmt.Sprintf("--slang=%s", t.LanguageCode))
			}
		}
	}
	for _, t := range media.Tracks {
		if !t.Default {
			args = append(args, fmt.Sprintf("--sub-file=%s", t.URL))
		}
	}

	args = append(args, cfg.Args...)
	args = append(args, media.URL)
	return args
}

// waitForIPC polls until mpv's IPC endpoint accepts connections
func waitForIPC(ctx context.Context, ipc *IPCConfig, exited <-chan struct{}) error {
	timeout := 5 * time.Second
	if ipc.Type == IPCTCP || ipc.Type == IPCNamedPipe {
		timeout = 10 * time.Second
	}
	deadline := time.After(timeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-exited:
			return fmt.Errorf("mpv exited before opening IPC at %s", ipc.Address)
		case <-deadline:
			return fmt.Errorf("timeout waiting for mpv IPC at %s after %v", ipc.Address, timeout)
		case <-ticker.C:
			switch ipc.Type {
			case IPCUnixSocket:
				if _, err := os.Stat(ipc.Address); err == nil {
					return nil
				}
			case IPCTCP:
				conn, err := net.DialTimeout("tcp", ipc.Address, 200*time.Millisecond)
				if err == nil {
					_ = conn.Close()
					return nil
				}
			case IPCNamedPipe:
				if isPipeReady(ipc.Address) {
					return nil
				}
			}
		}
	}
}
