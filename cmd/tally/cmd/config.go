package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/tally/internal/config"
)

var noStore = map[string]string{"skipStore": "true"}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or initialise configuration",
	Annotations: noStore,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "config file:            %s\n", config.Path())
		fmt.Fprintf(w, "store.url:              %s\n", cfg.Store.URL)
		fmt.Fprintf(w, "store.cache_ttl:        %s\n", cfg.Store.CacheTTL)
		fmt.Fprintf(w, "log.level:              %s\n", cfg.Log.Level)
		fmt.Fprintf(w, "import.categories_file: %s\n", cfg.Import.CategoriesFile)
		fmt.Fprintf(w, "import.date_order:      %s\n", cfg.Import.DateOrder)
		fmt.Fprintf(w, "recurring.suffix:       %q\n", cfg.Recurring.Suffix)
		fmt.Fprintf(w, "recurring.end_boundary: %s\n", cfg.Recurring.EndBoundary)
		fmt.Fprintf(w, "recurring.max_per_cycle: %d\n", cfg.Recurring.MaxPerCycle)
		fmt.Fprintf(w, "ui.timezone:            %s\n", cfg.UI.Timezone)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write the effective configuration to the config file",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", config.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configInitCmd)
}
