package magetasks

import (
	"fmt"
	"time"

	"github.com/magefile/mage/sh"
	"github.com/rs/zerolog"

	"github.com/dkoosis/recipes/internal/git"
	"github.com/dkoosis/recipes/internal/proc"
)

// BuildAll builds all binaries
func BuildAll() error {
	PrintH2Header("Build")

	repo := git.New(proc.NewShell(zerolog.Nop(), false))
	version := gitOr(repo.Describe, "dev")
	commit := gitOr(repo.ShortCommit, "unknown")
	date := time.Now().UTC().Format(time.RFC3339)

	PrintInfo("Building recipes...")
	if err := sh.RunV("go", "build", "-ldflags", Ldflags(version, commit, date), "-o", BinPath, MainPackage); err != nil {
		PrintError("Build failed")
		return err
	}

	PrintSuccess(fmt.Sprintf("Built: %s", BinPath))
	return nil
}

// Ldflags returns the linker flags that stamp the build metadata.
func Ldflags(version, commit, date string) string {
	pkg := ModulePath + "/internal/version"
	return fmt.Sprintf("-s -w -X '%s.Version=%s' -X '%s.CommitHash=%s' -X '%s.BuildDate=%s'",
		pkg, version, pkg, commit, pkg, date)
}

// Clean removes build artifacts
func Clean() error {
	PrintH2Header("Clean")

	if err := sh.Rm("./bin"); err != nil {
		return err
	}
	_ = sh.Run("go", "clean", "-cache")

	PrintSuccess("Cleaned build artifacts")
	return nil
}

func gitOr(query func(root string) (string, error), fallback string) string {
	out, err := query(root())
	if err != nil || out == "" {
		return fallback
	}
	return out
}
