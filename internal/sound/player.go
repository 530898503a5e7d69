package sound

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/zjrosen/soundpairs/internal/log"
)

// Player starts playback of an asset without waiting for it to finish.
type Player interface {
	Play(a Asset) error
}

// ErrNoPlayer indicates no supported audio command was found on PATH.
var ErrNoPlayer = errors.New("no audio player command found")

// NopPlayer discards every playback request. Used when audio is disabled.
type NopPlayer struct{}

// Play implements Player.
func (NopPlayer) Play(Asset) error { return nil }

// CommandPlayer plays sounds by spawning an OS-native audio command.
type CommandPlayer struct {
	name string
	args []string // arguments placed before the file path

	// argv, when set, builds the full argument list for a path instead.
	argv func(path string) []string

	// start is swapped in tests.
	start func(cmd *exec.Cmd) error
}

// candidate is a known audio command and the arguments it needs.
type candidate struct {
	name string
	args []string
	argv func(path string) []string
}

// powershellArgs embeds path in the script, since -Command swallows any
// trailing arguments into the command text. Media.SoundPlayer plays WAV only.
func powershellArgs(path string) []string {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	return []string{"-NoProfile", "-Command", "(New-Object Media.SoundPlayer " + quoted + ").PlaySync()"}
}

// candidates returns the audio commands tried for the current OS, in order.
func candidates(goos string) []candidate {
	switch goos {
	case "darwin":
		return []candidate{{name: "afplay"}}
	case "windows":
		return []candidate{{name: "powershell", argv: powershellArgs}}
	default:
		return []candidate{
			{name: "paplay"},
			{name: "pw-play"},
			{name: "aplay", args: []string{"-q"}},
			{name: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		}
	}
}

// NewCommandPlayer creates a player for an explicit command name.
// Known commands get their usual arguments; unknown ones get only the path.
func NewCommandPlayer(name string) *CommandPlayer {
	p := &CommandPlayer{name: name, start: startDetached}
	for _, c := range candidates(runtime.GOOS) {
		if c.name == name {
			p.args, p.argv = c.args, c.argv
		}
	}
	return p
}

// DetectPlayer returns a CommandPlayer for the first audio command found on PATH.
func DetectPlayer() (*CommandPlayer, error) {
	return detect(runtime.GOOS, exec.LookPath)
}

func detect(goos string, lookPath func(string) (string, error)) (*CommandPlayer, error) {
	for _, c := range candidates(goos) {
		if _, err := lookPath(c.name); err == nil {
			log.Debug(log.CatSound, "Detected audio player", "command", c.name)
			return &CommandPlayer{name: c.name, args: c.args, argv: c.argv, start: startDetached}, nil
		}
	}
	return nil, fmt.Errorf("%w for %s", ErrNoPlayer, goos)
}

// Name returns the audio command this player spawns.
func (p *CommandPlayer) Name() string {
	return p.name
}

// Play implements Player. It returns once the command has started.
// Absent assets are ignored.
func (p *CommandPlayer) Play(a Asset) error {
	if a.Path == "" {
		return nil
	}
	var args []string
	if p.argv != nil {
		args = p.argv(a.Path)
	} else {
		args = append(append(args, p.args...), a.Path)
	}
	cmd := exec.Command(p.name, args...) //nolint:gosec // command is chosen from a fixed list or config
	if err := p.start(cmd); err != nil {
		return fmt.Errorf("starting %s: %w", p.name, err)
	}
	log.Debug(log.CatSound, "Playing sound", "sound", a.Name, "command", p.name)
	return nil
}

// startDetached starts cmd and reaps it in the background.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug(log.CatSound, "Audio command exited with error", "error", err)
		}
	}()
	return nil
}
