package magetasks

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dkoosis/recipes/internal/proc"
)

// runner executes the commands of named steps. Tests replace it.
var runner proc.Runner = proc.NewShell(zerolog.Nop(), Styled)

// Run runs a command as a named step and reports the outcome.
func Run(name, cmd string, args ...string) error {
	PrintInfo(name)
	if err := runner.Run(cmd, args...); err != nil {
		if !IsCommandNotFound(err) {
			PrintError(fmt.Sprintf("%s failed", name))
		}
		return err
	}
	PrintSuccess(name)
	return nil
}
