package main

import (
	"fmt"
	"strings"

	"github.com/lexgraph/lexgraph/model"
	"github.com/spf13/cobra"
)

func relatedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "related <document-id>",
		Short: "Print the three relationship views for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var documentID int64
			if _, err := fmt.Sscanf(args[0], "%d", &documentID); err != nil {
				return fmt.Errorf("invalid document id %q: %w", args[0], err)
			}

			lg, err := newLexGraph()
			if err != nil {
				return err
			}
			defer lg.Close()

			related, err := lg.RelatedDocuments(cmd.Context(), documentID)
			if err != nil {
				return err
			}
			printRelated(cmd, related)
			return nil
		},
	}
	return cmd
}

func printRelated(cmd *cobra.Command, related *model.RelatedDocuments) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "references (%d):\n", len(related.References))
	for _, ref := range related.References {
		fmt.Fprintf(out, "  -> %d (confidence %.1f)\n", ref.TargetID, ref.Confidence)
	}

	fmt.Fprintf(out, "referenced by (%d):\n", len(related.ReferencedBy))
	for _, ref := range related.ReferencedBy {
		fmt.Fprintf(out, "  <- %d (confidence %.1f)\n", ref.SourceID, ref.Confidence)
	}

	fmt.Fprintf(out, "shared entities (%d):\n", len(related.SharedEntities))
	for _, doc := range related.SharedEntities {
		fmt.Fprintf(out, "  %d %s (%d shared: %s)\n", doc.DocumentID, doc.Name, doc.SharedCount, strings.Join(doc.EntityNames, ", "))
	}
}
