package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/CTAG07/markovwords/pkg/wordlist"
	"github.com/spf13/cobra"
)

// NewWordlistCommand returns the wordlist command and its subcommands.
func NewWordlistCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Manage wordlists stored in the database",
	}

	var filter string
	importCmd := &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Append the words of a file to a stored wordlist, creating it if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := wordlist.NewFilter(filter)
			if err != nil {
				return err
			}

			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open wordlist file: %w", err)
			}
			defer func(file *os.File) {
				_ = file.Close()
			}(file)

			h, err := a.openStore()
			if err != nil {
				return err
			}
			defer h.Close()

			list, err := h.store.GetOrInsertList(ctx, args[0])
			if err != nil {
				return err
			}
			n, err := h.store.Import(ctx, list, file, f)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d words into %q\n", n, list.Name)
			return err
		},
	}
	importCmd.Flags().
		StringVarP(&filter, "filter", "f", "", "Only import lines matching this regular expression")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored wordlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.openStore()
			if err != nil {
				return err
			}
			defer h.Close()

			lists, err := h.store.GetListInfos(cmd.Context())
			if err != nil {
				return err
			}
			// Convert map to slice for consistent output
			out := make([]wordlist.ListInfo, 0, len(lists))
			for _, l := range lists {
				out = append(out, l)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the words of a stored wordlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := a.openStore()
			if err != nil {
				return err
			}
			defer h.Close()

			list, err := h.lookupList(ctx, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			return h.store.Words(ctx, list, func(word string) error {
				_, err := fmt.Fprintln(w, word)
				return err
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a stored wordlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := a.openStore()
			if err != nil {
				return err
			}
			defer h.Close()

			list, err := h.lookupList(ctx, args[0])
			if err != nil {
				return err
			}
			return h.store.RemoveList(ctx, list)
		},
	}

	cmd.AddCommand(importCmd, listCmd, showCmd, removeCmd)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
