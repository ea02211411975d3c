// Package project loads a Java source tree into resolved units for the
// analysis in package java. Resolution is best effort by design: only
// project-declared types, imports and a handful of java.lang names resolve,
// and everything else stays unbound. A project with missing dependencies
// still loads completely; its references just render as unresolved.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/javascan/java"
)

var log = commonlog.GetLogger("javascan.project")

// Load parses every Java file under root and returns one resolved unit per
// file, in lexical path order. Configuration is read from javascan.toml in
// root when present; without configured roots, a pom.xml decides the source
// directories before the scan falls back to root itself.
func Load(root string) ([]*java.ResolvedUnit, error) {
	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}
	if len(cfg.Roots) == 0 {
		roots, err := mavenRoots(root)
		if err != nil {
			return nil, err
		}
		cfg.Roots = roots
	}
	return LoadFrom(root, cfg)
}

// LoadFrom parses the project under root using an explicit configuration.
//
// Loading runs two passes: the first parses every file and registers all
// declared types in a project-wide symbol table, the second converts each
// parse into a resolved unit against that table, so references resolve
// across files regardless of order.
func LoadFrom(root string, cfg Config) ([]*java.ResolvedUnit, error) {
	files, err := listSourceFiles(root, cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("loading %d Java files under %s", len(files), root)

	parser := sitter.NewParser()
	parser.SetLanguage(tsjava.GetLanguage())

	type parsed struct {
		file   string
		source []byte
		tree   *sitter.Tree
	}
	parses := make([]parsed, 0, len(files))
	table := newSymbolTable()
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		tree, err := parser.ParseCtx(context.Background(), nil, source)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		table.addFile(tree.RootNode(), source)
		parses = append(parses, parsed{file: file, source: source, tree: tree})
	}
	table.resolveAll()

	units := make([]*java.ResolvedUnit, 0, len(parses))
	for _, p := range parses {
		log.Debugf("converting %s", p.file)
		units = append(units, convertUnit(p.file, p.tree.RootNode(), p.source, table))
	}
	return units, nil
}

func listSourceFiles(root string, cfg Config) ([]string, error) {
	roots := cfg.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	gi := loadGitignore(root)

	var files []string
	for _, r := range roots {
		dir := filepath.Join(root, r)
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warningf("walk %s: %v", path, err)
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if d.IsDir() {
				if d.Name() == ".git" {
					return filepath.SkipDir
				}
				if gi != nil && path != dir && gi.MatchesPath(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".java" {
				return nil
			}
			if gi != nil && gi.MatchesPath(rel) {
				return nil
			}
			if excluded(rel, cfg.Exclude) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
		if strings.Contains(rel, p) {
			return true
		}
	}
	return false
}
