package main

import (
	"errors"
	"fmt"

	"github.com/gekko3d/sceneedit"
	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/hierarchy"
	"github.com/spf13/cobra"
)

// NewReparentCommand creates the reparent command
func NewReparentCommand(opts *Options) *cobra.Command {
	var detach bool

	cmd := &cobra.Command{
		Use:   "reparent <child> [new-parent]",
		Short: "Try a hierarchy drag and drop",
		Long: `Drop the node named child onto the node named new-parent, the way the
hierarchy panel does, and print the resulting tree. Drops that would put a
node under itself are refused.

Examples:
  sceneinspect reparent Rotor Airship -s level.yaml
  sceneinspect reparent Rotor --detach -s level.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if detach == (len(args) == 2) {
				return fmt.Errorf("give either a new parent or --detach")
			}

			sess, err := opts.load()
			if err != nil {
				return err
			}
			child, err := sess.findByLabel(args[0])
			if err != nil {
				return err
			}
			var parent *core.NodeId
			if !detach {
				p, err := sess.findByLabel(args[1])
				if err != nil {
					return err
				}
				parent = &p
			}

			ed := sess.editor()
			if err := ed.RequestReparent(child, parent); err != nil {
				if errors.Is(err, sceneedit.ErrInvalidHierarchyOp) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "refused: %v\n", err)
					return nil
				}
				return err
			}
			sess.store.Apply(ed.Intents())

			snap := hierarchy.Build(sess.store.Nodes(), sess.scope)
			snap.Walk(func(id core.NodeId, depth int) bool {
				printNode(cmd.OutOrStdout(), id, snap.Label(id), depth, false)
				return true
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&detach, "detach", false, "Move the node to the top level")

	return cmd
}
