package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print an OpenAPI 3.0 document describing the MCP tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := newMCPServer(cmd)
		if err != nil {
			return err
		}

		data, err := srv.OpenAPI()
		if err != nil {
			return MapError(errors.Wrap(err, "failed to generate OpenAPI spec"))
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(openapiCmd)
}
