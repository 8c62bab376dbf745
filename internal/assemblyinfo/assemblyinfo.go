// Package assemblyinfo generates C# AssemblyInfo files.
package assemblyinfo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Settings are the assembly attributes to write. Empty strings are omitted.
type Settings struct {
	Title                string
	Description          string
	GUID                 string
	Product              string
	Company              string
	Copyright            string
	Configuration        string
	Version              string
	FileVersion          string
	InformationalVersion string
	ComVisible           bool
}

var fileTemplate = template.Must(template.New("AssemblyInfo").Parse(`//------------------------------------------------------------------------------
// <auto-generated>
//     This code was generated by recipes.
//     Changes to this file will be lost when the code is regenerated.
// </auto-generated>
//------------------------------------------------------------------------------

using System.Reflection;
using System.Runtime.InteropServices;
{{range .}}
[assembly: {{.Name}}({{.Value}})]{{end}}
`))

type attribute struct {
	Name  string
	Value string
}

func (s Settings) attributes() []attribute {
	var attrs []attribute
	add := func(name, value string) {
		if value != "" {
			attrs = append(attrs, attribute{Name: name, Value: quote(value)})
		}
	}
	add("AssemblyTitle", s.Title)
	add("AssemblyDescription", s.Description)
	add("AssemblyCompany", s.Company)
	add("AssemblyProduct", s.Product)
	add("AssemblyCopyright", s.Copyright)
	add("AssemblyConfiguration", s.Configuration)
	attrs = append(attrs, attribute{Name: "ComVisible", Value: fmt.Sprintf("%t", s.ComVisible)})
	add("Guid", s.GUID)
	add("AssemblyVersion", s.Version)
	add("AssemblyFileVersion", s.FileVersion)
	add("AssemblyInformationalVersion", s.InformationalVersion)
	return attrs
}

// Render returns the file contents for s.
func Render(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, s.attributes()); err != nil {
		return nil, fmt.Errorf("render assembly info: %w", err)
	}
	return buf.Bytes(), nil
}

// Create writes the assembly info for s to path, creating its directory.
func Create(path string, s Settings) error {
	data, err := Render(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create assembly info directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write assembly info %s: %w", path, err)
	}
	return nil
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
