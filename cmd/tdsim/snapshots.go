package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go-grid-defense/internal/storage"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshots,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	snapshotsCmd.AddCommand(deleteCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()

	list, err := store.ListSnapshots()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No snapshots saved yet.")
		fmt.Fprintln(out, "Run 'tdsim run --save <name>' to create one.")
		return nil
	}
	fmt.Fprintf(out, "  %-20s  %-8s  %s\n", "Name", "Size", "Updated")
	fmt.Fprintf(out, "  %-20s  %-8s  %s\n", "----", "----", "-------")
	for _, info := range list {
		fmt.Fprintf(out, "  %-20s  %-8d  %s\n", info.Name, info.Size, info.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteSnapshot(args[0]); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no snapshot named %q", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()

	snap, err := store.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Grid     %dx%d, cell %.0f\n", snap.Cols, snap.Rows, snap.CellSize)
	fmt.Fprintf(out, "Money    %d\n", snap.Money)
	fmt.Fprintf(out, "Lives    %d\n", snap.Lives)
	fmt.Fprintf(out, "Waves    %d (level %d)\n", snap.Generated, snap.InvaderLevel)
	fmt.Fprintf(out, "Seed     %d\n", snap.Seed)
	fmt.Fprintf(out, "Pieces   %d\n", len(snap.Pieces))
	for _, p := range snap.Pieces {
		fmt.Fprintf(out, "  %-10s  %d,%d  L%d\n", p.DefID, p.Col, p.Row, p.Level)
	}
	return nil
}
