// Package telephony hands a phone number to whatever the host can dial with.
package telephony

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
)

// Launcher places a phone call. Implementations are best effort; callers
// treat failure as non-fatal.
type Launcher interface {
	Call(number string) error
}

// URLLauncher opens a tel: URL through the platform opener, letting the
// desktop route it to a paired phone or softphone.
type URLLauncher struct{}

// NewLauncher returns the default launcher for this platform.
func NewLauncher() *URLLauncher {
	return &URLLauncher{}
}

// Call opens tel:<number>.
func (URLLauncher) Call(number string) error {
	if number == "" {
		return fmt.Errorf("telephony: empty number")
	}
	url := "tel:" + number

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("telephony: %w", err)
	}
	return nil
}

// LogLauncher records the call request instead of dialing. Used by surfaces
// with no telephony access (HTTP, MCP) so the flow still completes.
type LogLauncher struct{}

// Call logs the number and succeeds.
func (LogLauncher) Call(number string) error {
	log.Printf("[telephony] call requested: %s", number)
	return nil
}
