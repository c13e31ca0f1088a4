package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage ignore rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ignore rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current.out.IgnoreRules(current.svc.Rules.List(cmd.Context()))
		return nil
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add KEYWORD",
	Short: "Ignore imported rows whose description contains KEYWORD",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := current.svc.Rules.Add(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added rule %q\n", r.Keyword)
		return nil
	},
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove ID|KEYWORD",
	Short: "Remove an ignore rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := current.svc.Rules.Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed rule %q\n", r.Keyword)
		return nil
	},
}

func setActiveCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID|KEYWORD",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := current.svc.Rules.SetActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%sd rule %q\n", use, r.Keyword)
			return nil
		},
	}
}

func init() {
	rulesCmd.AddCommand(
		rulesListCmd,
		rulesAddCmd,
		rulesRemoveCmd,
		setActiveCmd("enable", "Enable an ignore rule", true),
		setActiveCmd("disable", "Disable an ignore rule", false),
	)
}
