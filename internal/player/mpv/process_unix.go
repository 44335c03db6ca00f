//go:build !windows

package mpv

import "os/exec"

func setupProcessAttributes(*exec.Cmd) {}
