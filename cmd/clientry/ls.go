package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/clientry/clientry/core/factory"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List resolved clients and their implementations",
	RunE:  runLs,
}

var lsImplsCmd = &cobra.Command{
	Use:   "impls",
	Short: "List registered implementation identifiers",
	RunE:  runLsImpls,
}

func init() {
	lsCmd.AddCommand(lsImplsCmd)
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry()
	if err != nil {
		return err
	}
	table := reg.Table()
	for _, name := range reg.Names() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, table[name].Impl); err != nil {
			return err
		}
	}
	return nil
}

func runLsImpls(cmd *cobra.Command, args []string) error {
	ids := factory.Clients.IDs()
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
			return err
		}
	}
	return nil
}
