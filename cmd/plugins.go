package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"recaf/internal/plugin"
	pkgstrings "recaf/pkg/strings"
)

func (i *Initializer) newPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List discovered plugins",
		Long: `Discovers plugins and prints their state. Plugins can be disabled or
constrained through YAML manifests in the plugins directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if i.deps.Plugins == nil {
				fmt.Fprintf(out, "%s\n", text.FgYellow.Sprint("No plugin support in this build"))
				return nil
			}
			// Failed plugins are shown in the table rather than failing the command.
			_ = i.deps.Plugins.Load()

			statuses := i.deps.Plugins.Status()
			if len(statuses) == 0 {
				fmt.Fprintf(out, "%s\n", text.FgYellow.Sprint("No plugins found"))
				return nil
			}
			renderPlugins(cmd, statuses)
			return nil
		},
	}
}

func renderPlugins(cmd *cobra.Command, statuses []plugin.Status) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("VERSION"),
		text.FgHiCyan.Sprint("STATE"),
		text.FgHiCyan.Sprint("PROVIDES"),
		text.FgHiCyan.Sprint("ERROR"),
	})
	for _, s := range statuses {
		errText := ""
		if s.Err != nil {
			errText = pkgstrings.Truncate(s.Err.Error(), pkgstrings.DefaultMaxLen)
		}
		t.AppendRow(table.Row{s.Name, s.Version, stateColor(s.State), strings.Join(s.Provides, ", "), errText})
	}
	t.Render()
}

func stateColor(state string) string {
	switch state {
	case plugin.StateLoaded:
		return text.FgGreen.Sprint(state)
	case plugin.StateFailed:
		return text.FgRed.Sprint(state)
	case plugin.StateDisabled:
		return text.FgYellow.Sprint(state)
	default:
		return state
	}
}
