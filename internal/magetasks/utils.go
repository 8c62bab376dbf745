package magetasks

import (
	"errors"
	"os/exec"
	"strings"
)

// notFoundMessages are the texts exec errors carry once mage's sh package
// has flattened them with %v.
var notFoundMessages = []string{
	"executable file not found",
	"no such file or directory",
}

// IsCommandNotFound reports whether err means the executable is missing.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	msg := err.Error()
	for _, m := range notFoundMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
