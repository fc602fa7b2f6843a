package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <paths...>",
		Short: "Report scan and parse errors in .lox files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectLoxFiles(args)
			if err != nil {
				return err
			}
			a.logger.Debug("checking files", "count", len(files))

			out := cmd.OutOrStdout()
			issues := 0
			for _, path := range files {
				source, err := readSource(path)
				if err != nil {
					return err
				}
				ev := evaluate(source, a.cfg.Scanner.MaxErrors)
				for _, diag := range ev.diags {
					line := max(diag.Pos.Line, 1)
					column := max(diag.Pos.Column, 1)
					fmt.Fprintf(out, "%s:%d:%d: %s\n", path, line, column, diag.Message())
					issues++
				}
				if ev.capErr != nil {
					fmt.Fprintf(out, "%s: %v\n", path, ev.capErr)
				}
			}

			if issues == 0 {
				fmt.Fprintln(out, "No issues found")
				return nil
			}
			return fmt.Errorf("check found %d issue(s)", issues)
		},
	}
}

func collectLoxFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string, explicit bool) {
		if !explicit && filepath.Ext(path) != ".lox" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target, true)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			addFile(path, false)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
