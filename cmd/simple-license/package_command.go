package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-license/pkg/simplelicense"
	"github.com/tendant/simple-license/pkg/simplelicense/config"
)

func newPackageCommand(ctx *commandContext) *cobra.Command {
	var flags profileFlags
	var outputDir string

	cmd := &cobra.Command{
		Use:   "package FILE...",
		Short: "Embed metadata and zip each file with its license",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.Output.Type = config.OutputFS
				cfg.Output.Dir = outputDir
			}
			if cfg.Output.Type == config.OutputMemory {
				return errors.New("output.type 'memory' discards archives when the command exits; use 'fs' or --output")
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
			sink, err := cfg.BuildSink()
			if err != nil {
				return err
			}

			files := make([]simplelicense.FileInput, 0, len(args))
			rows := make([][]string, 0, len(args))
			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					logger.Error("Failed to read file", "path", path, "err", err)
					rows = append(rows, []string{filepath.Base(path), "", "", "", err.Error()})
					failed++
					continue
				}
				files = append(files, simplelicense.FileInput{Name: filepath.Base(path), Content: data})
			}

			for _, result := range packager.PackageAll(cmd.Context(), files, profile) {
				if result.Err != nil {
					rows = append(rows, []string{result.FileName, "", "", "", result.Err.Error()})
					failed++
					continue
				}
				download := result.Download
				location, err := sink.Deliver(cmd.Context(), download)
				if err != nil {
					logger.Error("Failed to deliver archive", "archive", download.ArchiveName, "err", err)
					rows = append(rows, []string{download.FileName, download.Descriptor.MimeType, "", "", err.Error()})
					failed++
					continue
				}
				rows = append(rows, []string{
					download.FileName,
					download.Descriptor.MimeType,
					strconv.FormatBool(download.Embedded),
					location,
					"",
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Type", "Embedded", "Archive", "Error"},
				rows,
				nil,
			))

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write archives to this directory")
	return cmd
}
