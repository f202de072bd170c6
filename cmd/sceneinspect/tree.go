package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/hierarchy"
	"github.com/spf13/cobra"
)

// NewTreeCommand creates the tree command
func NewTreeCommand(opts *Options) *cobra.Command {
	var filter string
	var where string
	var showIds bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the hierarchy panel of the scene",
		Long: `Print the hierarchy exactly as the editor panel shows it: scoped to the
scene root, hidden helpers left out, children sorted by name.

Examples:
  sceneinspect tree -s level.yaml
  sceneinspect tree -s level.yaml --filter light
  sceneinspect tree -s level.yaml --where 'depth == 1 && children > 0'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter != "" && where != "" {
				return fmt.Errorf("--filter and --where cannot be combined")
			}
			sess, err := opts.load()
			if err != nil {
				return err
			}
			snap := hierarchy.Build(sess.store.Nodes(), sess.scope)

			if where != "" {
				q, err := hierarchy.CompileQuery(where)
				if err != nil {
					return err
				}
				matches, err := snap.Select(q)
				if err != nil {
					return err
				}
				for _, m := range matches {
					printNode(cmd.OutOrStdout(), m.Id, m.Label, 0, showIds)
				}
				return nil
			}

			if filter != "" {
				for _, m := range snap.Filter(filter) {
					printNode(cmd.OutOrStdout(), m.Id, m.Label, 0, showIds)
				}
				return nil
			}

			snap.Walk(func(id core.NodeId, depth int) bool {
				printNode(cmd.OutOrStdout(), id, snap.Label(id), depth, showIds)
				return true
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only list nodes whose name contains this text")
	cmd.Flags().StringVar(&where, "where", "", "Only list nodes matching an expression over id, label, depth and children")
	cmd.Flags().BoolVar(&showIds, "ids", false, "Show node ids")

	return cmd
}

func printNode(w io.Writer, id core.NodeId, label string, depth int, showId bool) {
	indent := strings.Repeat("  ", depth)
	if showId {
		_, _ = fmt.Fprintf(w, "%s%s (#%d)\n", indent, label, id)
		return
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", indent, label)
}
