package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Detect runs the package listing command and reports whether RobotPy is
// installed. A listing that cannot run at all yields ErrPythonMissing.
func Detect(ctx context.Context, pip []string) (bool, error) {
	if len(pip) == 0 {
		return false, fmt.Errorf("%w: empty pip command", ErrPythonMissing)
	}
	out, err := exec.CommandContext(ctx, pip[0], pip[1:]...).Output()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPythonMissing, err)
	}
	return HasRobotPy(string(out)), nil
}

// HasRobotPy reports whether any line of a pip listing mentions robotpy.
func HasRobotPy(listing string) bool {
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, "robotpy") {
			return true
		}
	}
	return false
}
