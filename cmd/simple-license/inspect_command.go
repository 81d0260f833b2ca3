package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-license/pkg/simplelicense/presets"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "inspect FILE",
		Short:       "Show the metadata embedded in a file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			desc, meta, err := presets.Inspect(filepath.Base(args[0]), data)
			if presets.IsUnsupported(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) carries no embedded metadata\n", filepath.Base(args[0]), desc.MimeType)
				return nil
			}
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Title", meta.Title},
				{"Artist", meta.Artist},
				{"Album", meta.Album},
				{"Institution", meta.Institution},
				{"Website", meta.Website},
				{"Contact", meta.Contact},
				{"Comment", meta.Comment},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
