// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"os"

	"github.com/snapvault/snapctl/pkg/config"
	"golang.org/x/term"
)

// IsInteractive checks if stdin is connected to a terminal AND the user wants TUI mode
func IsInteractive() bool {
	// Check both terminal capability and user preference
	return term.IsTerminal(int(os.Stdin.Fd())) && config.GetUseTUI()
}
