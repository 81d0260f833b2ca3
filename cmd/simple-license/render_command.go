package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var flags profileFlags

	cmd := &cobra.Command{
		Use:   "render FILENAME",
		Short: "Print the license text that would accompany FILENAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			profile, err := flags.profile(cfg)
			if err != nil {
				return err
			}
			packager, err := cfg.BuildPackager(logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), packager.RenderLicense(args[0], profile))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}
