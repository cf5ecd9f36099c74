package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/myenergy/tracker/internal/api/handler"
	"github.com/myenergy/tracker/internal/core/service"
	"github.com/myenergy/tracker/pkg/logger"
)

const (
	outFlag = "out"
	inFlag  = "in"
)

func NewExportCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		outFlag: &cobraflags.StringFlag{
			Name:  outFlag,
			Value: handler.BackupFilename,
			Usage: `File to write the document to ("-" for stdout)`,
		},
	}
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored document to a backup file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return exportCommand(cmd, flags[outFlag].GetString())
		},
	}
	cobraflags.RegisterMap(exportCmd, flags)
	return exportCmd
}

func NewImportCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		inFlag: &cobraflags.StringFlag{
			Name:  inFlag,
			Value: "",
			Usage: `Backup file to load ("-" for stdin); replaces the whole document`,
		},
	}
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored document with a backup file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return importCommand(cmd, flags[inFlag].GetString())
		},
	}
	cobraflags.RegisterMap(importCmd, flags)
	return importCmd
}

func exportCommand(cmd *cobra.Command, out string) error {
	ctx := cmd.Context()
	b, err := bootstrap(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer b.close(context.Background())

	data, err := service.NewBackupService(b.store, logger.Component("backup")).Export(ctx)
	if err != nil {
		return err
	}

	if out == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	b.log.Info().Str("file", out).Int("bytes", len(data)).Msg("backup exported")
	return nil
}

func importCommand(cmd *cobra.Command, in string) error {
	ctx := cmd.Context()
	if in == "" {
		return fmt.Errorf("--%s is required", inFlag)
	}

	var (
		data []byte
		err  error
	)
	if in == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(in)
	}
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	b, err := bootstrap(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer b.close(context.Background())

	res, err := service.NewBackupService(b.store, logger.Component("backup")).Import(ctx, data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d users, %d clients, %d houses, %d consumptions\n",
		res.Users, res.Clients, res.Houses, res.Consumptions)
	return err
}
