package project

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const pomFile = "pom.xml"

// mavenProject is the slice of a Maven POM the loader cares about: where
// the sources live and which submodules to visit.
type mavenProject struct {
	XMLName xml.Name    `xml:"project"`
	Modules []string    `xml:"modules>module"`
	Build   *mavenBuild `xml:"build"`
}

type mavenBuild struct {
	SourceDirectory string `xml:"sourceDirectory"`
}

// mavenRoots derives source roots from pom.xml under root, following module
// declarations into subdirectories. A missing POM yields nil; callers fall
// back to scanning root itself.
func mavenRoots(root string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, pomFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pomFile, err)
	}
	var pom mavenProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("parse %s: %w", pomFile, err)
	}

	var roots []string
	src := filepath.Join("src", "main", "java")
	if pom.Build != nil && pom.Build.SourceDirectory != "" {
		src = filepath.FromSlash(pom.Build.SourceDirectory)
	}
	if dirExists(filepath.Join(root, src)) {
		roots = append(roots, src)
	}
	for _, module := range pom.Modules {
		sub, err := mavenRoots(filepath.Join(root, module))
		if err != nil {
			return nil, err
		}
		for _, s := range sub {
			roots = append(roots, filepath.Join(module, s))
		}
	}
	return roots, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
