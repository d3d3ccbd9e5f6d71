package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vistacli/internal/vista"
)

func newFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage media-library folders",
	}

	cmd.AddCommand(newFolderListCmd())
	cmd.AddCommand(newFolderAddCmd())
	cmd.AddCommand(newFolderDeleteCmd())

	return cmd
}

func newFolderListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List media folders",
		Args:  cobra.NoArgs,
		RunE:  runFolderList,
	}

	cmd.Flags().Bool("json", false, "print the raw folder objects as JSON")
	cmd.Flags().Bool("csv", false, "print title,id,created_at rows")
	cmd.Flags().String("media-path", "", "list subfolders of the given folder id")

	return cmd
}

func newFolderAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a media folder",
		Args:  cobra.ExactArgs(1),
		RunE:  runFolderAdd,
	}

	cmd.Flags().StringP("description", "d", "", "folder description")
	cmd.Flags().StringArrayP("label", "l", nil, "label to attach (repeatable)")
	cmd.Flags().StringArrayP("entity-gid", "e", nil, "profile group GID to share with (repeatable)")
	cmd.Flags().String("media-path", "", "parent folder id (default: library root)")

	return cmd
}

func newFolderDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <folder-id>",
		Short: "Delete a media folder",
		Args:  cobra.ExactArgs(1),
		RunE:  runFolderDelete,
	}
}

func runFolderList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asCSV, _ := cmd.Flags().GetBool("csv")
	parentID, _ := cmd.Flags().GetString("media-path")

	if asJSON && asCSV {
		return errors.New("--json and --csv are mutually exclusive")
	}

	logger := buildLogger()

	client, err := newVistaClient(logger)
	if err != nil {
		return err
	}

	folders, err := client.ListFolders(cmd.Context(), parentID, "")
	if err != nil {
		return fmt.Errorf("listing folders: %w", err)
	}

	switch {
	case asJSON:
		return printFoldersJSON(os.Stdout, folders)
	case asCSV:
		return printFoldersCSV(os.Stdout, folders)
	default:
		printFolderTitles(os.Stdout, folders)
		return nil
	}
}

func runFolderAdd(cmd *cobra.Command, args []string) error {
	description, _ := cmd.Flags().GetString("description")
	labels, _ := cmd.Flags().GetStringArray("label")
	entityGIDs, _ := cmd.Flags().GetStringArray("entity-gid")
	parentID, _ := cmd.Flags().GetString("media-path")

	logger := buildLogger()

	client, err := newVistaClient(logger)
	if err != nil {
		return err
	}

	folder, err := client.CreateFolder(cmd.Context(), vista.CreateFolderRequest{
		Title:       args[0],
		Description: description,
		Labels:      labels,
		EntityGIDs:  entityGIDs,
		ParentID:    parentID,
	})
	if err != nil {
		return fmt.Errorf("creating folder %q: %w", args[0], err)
	}

	statusf("Created folder %q (id %s)\n", folder.Title, folder.ID)

	return nil
}

func runFolderDelete(cmd *cobra.Command, args []string) error {
	logger := buildLogger()

	client, err := newVistaClient(logger)
	if err != nil {
		return err
	}

	// The id stays in the message so a failure in a scripted loop can be
	// traced back to the folder it hit.
	if err := client.DeleteFolder(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting folder %s: %w", args[0], err)
	}

	statusf("Deleted folder %s\n", args[0])

	return nil
}
