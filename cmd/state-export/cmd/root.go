// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const loggerName = "state-export"

func NewRootCmd() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "state-export",
		Short: "Export account balances from a pebble state store",
		Long: `Walks the account table of a pebble state store once and writes two
fixed-width files: address-mapping.bin (20-byte addresses) and database.bin
(32-byte big-endian balances). Record i of each file belongs to the same
account, in ascending address order.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return readConfigFile(v)
		},
		RunE: func(*cobra.Command, []string) error {
			return withLogger(v, func(log logging.Logger) error {
				cfg, err := newExportConfig(v)
				if err != nil {
					return err
				}
				_, err = runExport(log, cfg)
				return err
			})
		},
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	addGlobalFlags(cmd.PersistentFlags())
	addExportFlags(cmd.Flags())

	inspect := newInspectCmd(v)
	cmd.AddCommand(inspect)

	// Only flags bound here can be overridden by env or the config file.
	cobra.CheckErr(v.BindPFlags(cmd.PersistentFlags()))
	cobra.CheckErr(v.BindPFlags(cmd.Flags()))
	cobra.CheckErr(v.BindPFlags(inspect.Flags()))
	return cmd
}

func withLogger(v *viper.Viper, f func(logging.Logger) error) error {
	config, err := newLoggingConfig(v)
	if err != nil {
		return err
	}
	factory := newLogFactory(config)
	defer factory.Close()

	log, err := factory.Make(loggerName)
	if err != nil {
		return err
	}
	return f(log)
}
