package magetasks

import (
	"errors"
	"fmt"
)

// linter is one lint step. Optional linters are skipped when not installed.
type linter struct {
	name     string
	cmd      string
	args     []string
	install  string
	optional bool
}

var (
	goFmt       = linter{name: "Go Format", cmd: "go", args: []string{"fmt", "./..."}}
	goVet       = linter{name: "Go Vet", cmd: "go", args: []string{"vet", "./..."}}
	staticcheck = linter{
		name:     "Staticcheck",
		cmd:      "staticcheck",
		args:     []string{"./..."},
		install:  "honnef.co/go/tools/cmd/staticcheck@latest",
		optional: true,
	}
	golangci = linter{
		name:     "Golangci-lint",
		cmd:      "golangci-lint",
		args:     golangciArgs(),
		install:  "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		optional: true,
	}
)

func (l linter) run() error {
	err := Run(l.name, l.cmd, l.args...)
	switch {
	case err == nil:
		return nil
	case l.install != "" && IsCommandNotFound(err):
		PrintWarning(fmt.Sprintf("%s not found (install: go install %s)", l.name, l.install))
		return err
	}
	return fmt.Errorf("%s failed: %w", l.cmd, err)
}

// LintAll runs every linter and joins their failures.
func LintAll() error {
	var errs []error
	for _, l := range []linter{goFmt, goVet, staticcheck, golangci} {
		err := l.run()
		if err == nil || (l.optional && IsCommandNotFound(err)) {
			continue
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	PrintSuccess("All linters passed")
	return nil
}

// LintFormat formats the code.
func LintFormat() error { return goFmt.run() }

// LintVet runs go vet.
func LintVet() error { return goVet.run() }

// LintStaticcheck runs staticcheck.
func LintStaticcheck() error { return staticcheck.run() }

// LintGolangci runs golangci-lint.
func LintGolangci() error { return golangci.run() }

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error {
	fix := golangci
	fix.name = "Golangci-lint Fix"
	fix.args = golangciArgs("--fix")
	return fix.run()
}

func golangciArgs(extra ...string) []string {
	args := append([]string{"run"}, extra...)
	return append(args,
		"--disable=exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,tagalign",
		"--timeout=5m",
		"./...")
}
