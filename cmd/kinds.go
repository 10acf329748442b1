package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yaoapp/mongoverify/operation"
	"github.com/yaoapp/mongoverify/validation"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: L("List operations and validation types"),
	Long:  L("List operations and validation types"),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, color.WhiteString("Operations"))
		for _, kind := range operation.Kinds() {
			method, _ := operation.Method(kind)
			fmt.Fprintf(out, "  %-16s %s\n", kind, method)
		}

		fmt.Fprintln(out, color.WhiteString("Validations"))
		for _, kind := range validation.Kinds() {
			fmt.Fprintf(out, "  %s\n", kind)
		}
	},
}
