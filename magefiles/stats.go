// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/semprops/internal/registry"
)

// goStats counts lines and test functions across the module's Go files.
type goStats struct {
	ProdLines int `json:"go_loc_prod"`
	TestLines int `json:"go_loc_test"`
	TestFuncs int `json:"test_funcs"`
	Packages  int `json:"packages"`
}

// Stats prints Go lines of code, test function count, and the size of the
// builtin property registry as one JSON record.
func Stats() error {
	gs, err := collectGoStats(".")
	if err != nil {
		return err
	}
	reg, err := registry.Default()
	if err != nil {
		return fmt.Errorf("load builtin registry: %w", err)
	}

	labeled := 0
	for _, def := range reg.Properties() {
		if def.Label != "" {
			labeled++
		}
	}

	record := struct {
		goStats
		GoLines           int `json:"go_loc"`
		Properties        int `json:"registry_properties"`
		LabeledProperties int `json:"registry_labeled"`
		ExtraAliases      int `json:"registry_extra_aliases"`
	}{
		goStats:           gs,
		GoLines:           gs.ProdLines + gs.TestLines,
		Properties:        reg.Len(),
		LabeledProperties: labeled,
		ExtraAliases:      len(reg.ExtraAliases()),
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

// collectGoStats walks root, skipping build output, tooling, and
// underscore-prefixed directories.
func collectGoStats(root string) (goStats, error) {
	var gs goStats
	pkgs := map[string]bool{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "vendor" || name == "magefiles" || name == binaryDir ||
				strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		lines, tests, err := scanGoFile(path)
		if err != nil {
			return nil
		}
		pkgs[filepath.Dir(path)] = true
		if strings.HasSuffix(path, "_test.go") {
			gs.TestLines += lines
			gs.TestFuncs += tests
		} else {
			gs.ProdLines += lines
		}
		return nil
	})
	gs.Packages = len(pkgs)
	return gs, err
}

// scanGoFile returns the line count of path and how many top-level Test
// functions it declares.
func scanGoFile(path string) (lines, tests int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		if strings.HasPrefix(scanner.Text(), "func Test") {
			tests++
		}
	}
	return lines, tests, scanner.Err()
}
