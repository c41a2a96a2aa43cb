package main

import (
	"fmt"
	"strconv"

	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/ordering"
	"github.com/spf13/cobra"
)

func newMoveCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move the image at FROM to TO; index 0 is the primary image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return editList(cmd, root.listPath, func(m *ordering.Manager, l model.AssetList) error {
				return m.Move(l, from, to)
			})
		},
	}
}

func newRemoveCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove the image at INDEX from the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editList(cmd, root.listPath, func(m *ordering.Manager, l model.AssetList) error {
				return m.Remove(l, i)
			})
		},
	}
}

// editList runs one ordering operation and persists the list it reports.
func editList(cmd *cobra.Command, path string, edit func(*ordering.Manager, model.AssetList) error) error {
	list, err := loadList(path)
	if err != nil {
		return err
	}

	next, changed := list, false
	m := ordering.NewManager(
		func(l model.AssetList) { next, changed = l, true },
		func(i int) {
			if l, err := ordering.RemoveAt(list, i); err == nil {
				next, changed = l, true
			}
		},
	)
	if err := edit(m, list); err != nil {
		return err
	}
	if !changed {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to do")
		return nil
	}
	if err := saveList(path, next); err != nil {
		return err
	}
	if p, ok := next.Primary(); ok {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d image(s), primary: %s\n", len(next), p.URL())
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "list is empty")
	}
	return nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}
