// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/igor53627/state-export/export"
	"github.com/igor53627/state-export/utils"
)

func newInspectCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Validate a finished export and print its first records",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return inspect(v.GetString(outDirKey), v.GetInt(headKey))
		},
	}
	cmd.Flags().Int(headKey, 10, "number of leading records to print")
	return cmd
}

func inspect(dir string, head int) error {
	pairs, err := export.OpenPairs(dir)
	if err != nil {
		return err
	}
	defer pairs.Close()

	if err := pairs.Verify(); err != nil {
		return err
	}
	utils.Outf("{{green}}%d records{{/}} in %s, addresses ascending\n", pairs.Len(), dir)

	for i := 0; i < head && i < pairs.Len(); i++ {
		addr, err := pairs.Address(i)
		if err != nil {
			return err
		}
		balance, err := pairs.Balance(i)
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}%d{{/}} %s %s\n", i, addr, utils.FormatBalance(balance))
	}
	return nil
}
