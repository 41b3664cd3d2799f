package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agiangrant/orrery/input"
)

var keysBackend string

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List key names and their native codes",
	Long: `List every key name accepted by IsKeyDownName together with the
native code a backend reports for it. Keys a backend cannot report show "-".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		name := keysBackend
		if name == "" {
			name = loaded.Backend.Name
		}
		b, err := newBackend(name)
		if err != nil {
			return err
		}
		table := b.Tables().Keys

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "KEY\t%s\n", name)
		for _, k := range input.AllKeys() {
			code := "-"
			if c, ok := table.Reverse(k); ok {
				code = fmt.Sprintf("%#x", c)
			}
			fmt.Fprintf(w, "%s\t%s\n", k, code)
		}
		return w.Flush()
	},
}

func init() {
	keysCmd.Flags().StringVarP(&keysBackend, "backend", "b", "", "backend whose codes to show (default from config)")
	rootCmd.AddCommand(keysCmd)
}
