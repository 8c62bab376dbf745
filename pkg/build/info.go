package build

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteInfo renders the build settings as a table to w. The NuGet API key
// is masked.
func (c *Config) WriteInfo(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Build")
	t.AppendHeader(table.Row{"Setting", "Value"})

	for _, row := range c.infoRows() {
		t.AppendRow(table.Row{row[0], row[1]})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func (c *Config) infoRows() [][2]string {
	apiKey := ""
	if c.NuGetAPIKey != "" {
		apiKey = "********"
	}
	return [][2]string{
		{"Target", c.Target},
		{"Configuration", c.Configuration},
		{"Verbosity", c.Verbosity.String()},
		{"Local", strconv.FormatBool(c.Local)},
		{"Company", c.Company},
		{"Config File", c.ConfigFile},
		{"Check Staged Changes", strconv.FormatBool(c.CheckStagedChanges)},
		{"Check Uncommitted Changes", strconv.FormatBool(c.CheckUncommittedChanges)},
		{"Check Untracked Files", strconv.FormatBool(c.CheckUntrackedFiles)},
		{"Git Root", c.GitRoot},
		{"Git User", c.GitUserName},
		{"Git Email", c.GitEmail},
		{"Git Remote", c.GitRemote},
		{"Enable Commits", strconv.FormatBool(c.EnableCommits)},
		{"Enable Tags", strconv.FormatBool(c.EnableTags)},
		{"NuGet Source", c.NuGetSource},
		{"NuGet Local Source", c.NuGetLocalSource},
		{"NuGet API Key", apiKey},
		{"Squirrel Central Repository", c.SquirrelCentralRepository},
		{"Squirrel Local Repository", c.SquirrelLocalRepository},
	}
}
