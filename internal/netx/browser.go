// Package netx holds small network-adjacent side-effect helpers.
package netx

import (
	"fmt"
	"os/exec"
	"runtime"
)

// startCommand is a test seam for exec.Cmd.Start.
var startCommand = func(cmd *exec.Cmd) error { return cmd.Start() }

// OpenBrowser opens url in the system default browser. Used to hand the
// user over to the external payment gateway after enrollment initiation.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := startCommand(cmd); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
