package recipe

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteInfo renders the recipe settings as a table to w.
func WriteInfo(w io.Writer, b Buildable) {
	r := b.Common()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("DotNet " + titles[b.Kind()] + ": " + r.ID)
	t.AppendHeader(table.Row{"Setting", "Value"})

	rows := [][2]string{
		{"Id", r.ID},
		{"Name", r.Name},
		{"Description", r.Description},
		{"Solution", r.Solution},
		{"Project", r.Project},
		{"Solution Directory", r.SolutionDirectory},
		{"Solution File", r.SolutionFile},
		{"Project File", r.ProjectFile},
		{"Assembly Info File", r.AssemblyInfoFile},
		{"Release Notes File", r.ReleaseNotesFile},
		{"Release Notes VNext File", r.ReleaseNotesVNextFile},
	}
	rows = append(rows, b.InfoRows()...)
	rows = append(rows,
		[2]string{"Prepare Release Notes", strconv.FormatBool(r.PrepareReleaseNotes)},
		[2]string{"Update Assembly Info", strconv.FormatBool(r.UpdateAssemblyInfo)},
		[2]string{"Commit Changes", strconv.FormatBool(r.CommitChanges)},
		[2]string{"Tag Version", strconv.FormatBool(r.TagVersion)},
		[2]string{"Push To Remote", strconv.FormatBool(r.PushToRemote)},
		[2]string{"Remote Name", r.RemoteName},
	)
	for _, row := range rows {
		t.AppendRow(table.Row{row[0], row[1]})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

var titles = map[Kind]string{KindApp: "App", KindLib: "Lib"}
