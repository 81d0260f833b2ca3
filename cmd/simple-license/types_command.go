package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "types",
		Short:       "List recognized file extensions",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			types := simplelicense.SupportedTypes()
			rows := make([][]string, 0, len(types))
			for _, t := range types {
				rows = append(rows, []string{"." + t.Extension, t.MimeType, string(t.Strategy)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Extension", "MIME type", "Strategy"}, rows, nil))
			return nil
		},
	}
}
