package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexgraph/lexgraph"
	"github.com/lexgraph/lexgraph/model"
	"github.com/spf13/cobra"
)

var watchedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

func extractCmd() *cobra.Command {
	var useNER bool

	cmd := &cobra.Command{
		Use:   "extract <path>",
		Short: "Run the extraction pipeline over a text file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lg, err := newLexGraph()
			if err != nil {
				return err
			}
			defer lg.Close()

			if useNER {
				if err := lg.UseNERExtractor(); err != nil {
					return err
				}
			}

			paths, err := collectFiles(args[0])
			if err != nil {
				return err
			}
			for _, path := range paths {
				if err := processFile(cmd, lg, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&useNER, "ner", false, "use the model-backed entity extraction path")
	return cmd
}

// collectFiles expands a path into the list of extractable files beneath it.
func collectFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && watchedExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func processFile(cmd *cobra.Command, lg *lexgraph.LexGraph, path string) error {
	doc, err := model.NewDocumentFromFile(path, model.Metadata{"source": "cli"})
	if err != nil {
		return err
	}
	if err := lg.ProcessDocument(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "processed %s (document %d)\n", path, doc.ID)
	return nil
}
