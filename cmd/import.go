package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mini-library/library"
)

var (
	importOwner string
	importForce bool
)

var importCmd = &cobra.Command{
	Use:   "import <books.json>",
	Short: "Import a catalog document into an owner's library",
	Long: `Import copies an existing books.json document (for example one
written by the console edition) into the given owner's store. The
target library must be empty unless --force is given, in which case it
is overwritten whole.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := setup()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(filepath.Clean(args[0]))
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		var books []library.Book
		if err := json.Unmarshal(data, &books); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		if existing := mgr.Books(importOwner); len(existing) > 0 && !importForce {
			return fmt.Errorf("owner %q already has %d book(s); use --force to overwrite", importOwner, len(existing))
		}

		if err := mgr.SaveBooks(importOwner, books); err != nil {
			return err
		}
		fmt.Printf("Imported %d book(s) into %q's library.\n", len(books), importOwner)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importOwner, "owner", library.DefaultOwner, "owner whose library receives the import")
	importCmd.Flags().BoolVar(&importForce, "force", false, "overwrite a non-empty library")
	rootCmd.AddCommand(importCmd)
}
