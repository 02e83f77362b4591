package cmd

import (
	"github.com/spf13/cobra"

	"recaf/internal/config"
)

func (i *Initializer) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [section]",
		Short: "Print configuration as YAML",
		Long: `Loads the configuration directory and prints every section, or only
the named one, as YAML. Missing files are reported with their defaults.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{config.KeyBackend, config.KeyDecompile, config.KeyDisplay, config.KeyKeybinding},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := i.configDir()
			if err != nil {
				return err
			}
			m := config.NewManager(dir, nil)
			if err := m.Initialize(); err != nil {
				return err
			}

			var data []byte
			if len(args) == 0 {
				data, err = m.DumpAll()
			} else {
				data, err = m.DumpSection(args[0])
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
