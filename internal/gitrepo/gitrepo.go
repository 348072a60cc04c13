// Package gitrepo answers questions about the current checkout by shelling
// out to git.
package gitrepo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CurrentBranch returns the abbreviated name of the checked-out branch.
func CurrentBranch(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
