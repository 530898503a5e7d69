package sound

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect_PicksFirstAvailable(t *testing.T) {
	lookPath := func(name string) (string, error) {
		if name == "aplay" || name == "ffplay" {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}

	p, err := detect("linux", lookPath)
	require.NoError(t, err)
	require.Equal(t, "aplay", p.Name())
	require.Equal(t, []string{"-q"}, p.args)
}

func TestDetect_NoneAvailable(t *testing.T) {
	_, err := detect("darwin", func(string) (string, error) { return "", exec.ErrNotFound })
	require.ErrorIs(t, err, ErrNoPlayer)
}

func TestCommandPlayer_Play(t *testing.T) {
	var started *exec.Cmd
	p := &CommandPlayer{name: "aplay", args: []string{"-q"}, start: func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}}

	require.NoError(t, p.Play(Asset{Name: "a", Path: "/tmp/a.wav"}))
	require.NotNil(t, started)
	require.Equal(t, []string{"aplay", "-q", "/tmp/a.wav"}, started.Args)
}

func TestCommandPlayer_Play_AbsentAsset(t *testing.T) {
	called := false
	p := &CommandPlayer{name: "aplay", start: func(*exec.Cmd) error {
		called = true
		return nil
	}}

	require.NoError(t, p.Play(Asset{}))
	require.False(t, called)
}

func TestCommandPlayer_Play_StartError(t *testing.T) {
	p := &CommandPlayer{name: "aplay", start: func(*exec.Cmd) error { return errors.New("boom") }}
	err := p.Play(Asset{Path: "/tmp/a.wav"})
	require.ErrorContains(t, err, "starting aplay")
}

func TestNopPlayer(t *testing.T) {
	require.NoError(t, NopPlayer{}.Play(Asset{Path: "/tmp/a.wav"}))
}

func TestDetect_WindowsEmbedsPathInScript(t *testing.T) {
	p, err := detect("windows", func(name string) (string, error) { return name, nil })
	require.NoError(t, err)
	require.Equal(t, "powershell", p.Name())

	var started *exec.Cmd
	p.start = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}
	require.NoError(t, p.Play(Asset{Name: "it's", Path: `C:\sounds\it's.wav`}))
	require.Equal(t, []string{
		"powershell", "-NoProfile", "-Command",
		`(New-Object Media.SoundPlayer 'C:\sounds\it''s.wav').PlaySync()`,
	}, started.Args)
}
