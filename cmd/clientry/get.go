package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getTransient bool

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Construct a client and report its concrete type",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getTransient, "transient", false, "bypass the instance cache")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry()
	if err != nil {
		return err
	}
	name := args[0]
	var inst any
	if getTransient {
		inst, err = reg.GetTransient(name)
	} else {
		inst, err = reg.Get(name)
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%T\n", name, inst); err != nil {
		return err
	}
	return nil
}
