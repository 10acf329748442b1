package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/yaoapp/mongoverify/config"
	"github.com/yaoapp/mongoverify/serializer"
	"github.com/yaoapp/mongoverify/share"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: L("Show configure"),
	Long:  L("Show configure"),
	RunE: func(cmd *cobra.Command, args []string) error {
		Boot()
		res := map[string]interface{}{
			"version":        share.VERSION,
			"config":         config.Conf,
			"keyField":       config.Conf.KeyID(),
			"serializeNulls": serializer.Default().SerializeNulls(),
		}

		data, err := jsoniter.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
