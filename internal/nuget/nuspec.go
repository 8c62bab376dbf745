package nuget

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const nuspecNamespace = "http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd"

type manifest struct {
	XMLName  xml.Name       `xml:"package"`
	XMLNS    string         `xml:"xmlns,attr"`
	Metadata manifestMeta   `xml:"metadata"`
	Files    *manifestFiles `xml:"files,omitempty"`
}

type manifestMeta struct {
	ID                       string        `xml:"id"`
	Version                  string        `xml:"version"`
	Title                    string        `xml:"title,omitempty"`
	Authors                  string        `xml:"authors"`
	Owners                   string        `xml:"owners,omitempty"`
	RequireLicenseAcceptance bool          `xml:"requireLicenseAcceptance"`
	ProjectURL               string        `xml:"projectUrl,omitempty"`
	IconURL                  string        `xml:"iconUrl,omitempty"`
	Description              string        `xml:"description"`
	Summary                  string        `xml:"summary,omitempty"`
	ReleaseNotes             string        `xml:"releaseNotes,omitempty"`
	Copyright                string        `xml:"copyright,omitempty"`
	Tags                     string        `xml:"tags,omitempty"`
	Dependencies             *dependencies `xml:"dependencies,omitempty"`
}

type dependencies struct {
	Groups []dependencyGroup `xml:"group"`
}

type dependencyGroup struct {
	TargetFramework string             `xml:"targetFramework,attr,omitempty"`
	Dependencies    []manifestDepEntry `xml:"dependency"`
}

type manifestDepEntry struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr,omitempty"`
}

type manifestFiles struct {
	Files []manifestFile `xml:"file"`
}

type manifestFile struct {
	Src    string `xml:"src,attr"`
	Target string `xml:"target,attr,omitempty"`
}

// Manifest renders the .nuspec document for s.
func Manifest(s PackSettings) ([]byte, error) {
	description := s.Description
	if description == "" {
		description = s.ID
	}
	authors := s.Authors
	if len(authors) == 0 {
		authors = s.Owners
	}

	m := manifest{
		XMLNS: nuspecNamespace,
		Metadata: manifestMeta{
			ID:                       s.ID,
			Version:                  s.Version,
			Title:                    s.Title,
			Authors:                  strings.Join(authors, ","),
			Owners:                   strings.Join(s.Owners, ","),
			RequireLicenseAcceptance: s.RequireLicenseAcceptance,
			ProjectURL:               s.ProjectURL,
			IconURL:                  s.IconURL,
			Description:              description,
			Summary:                  s.Summary,
			ReleaseNotes:             strings.Join(s.ReleaseNotes, "\n"),
			Copyright:                s.Copyright,
			Tags:                     strings.Join(s.Tags, " "),
			Dependencies:             groupDependencies(s.Dependencies),
		},
	}
	if len(s.Files) > 0 {
		m.Files = &manifestFiles{}
		for _, f := range s.Files {
			m.Files.Files = append(m.Files.Files, manifestFile{Src: f.Source, Target: f.Target})
		}
	}

	body, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render nuspec for %s: %w", s.ID, err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteManifest renders the manifest for s into path.
func WriteManifest(path string, s PackSettings) error {
	data, err := Manifest(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create nuspec directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write nuspec %s: %w", path, err)
	}
	return nil
}

// groupDependencies groups dependencies by target framework, keeping the
// order in which frameworks first appear.
func groupDependencies(deps []Dependency) *dependencies {
	if len(deps) == 0 {
		return nil
	}
	out := &dependencies{}
	index := map[string]int{}
	for _, d := range deps {
		i, ok := index[d.TargetFramework]
		if !ok {
			i = len(out.Groups)
			index[d.TargetFramework] = i
			out.Groups = append(out.Groups, dependencyGroup{TargetFramework: d.TargetFramework})
		}
		out.Groups[i].Dependencies = append(out.Groups[i].Dependencies,
			manifestDepEntry{ID: d.ID, Version: d.Version})
	}
	return out
}
