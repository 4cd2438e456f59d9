package cli

import (
	"Recipe-Grocery-Backend/cmd/config"
	"Recipe-Grocery-Backend/internal/utils"
	"fmt"

	"github.com/spf13/cobra"
)

const defaultPort = "8080"

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = utils.GetConfig("APP_PORT")
			}
			if port == "" {
				port = defaultPort
			}

			db, err := config.ConnectDB()
			if err != nil {
				return err
			}

			app, err := config.NewApp(db)
			if err != nil {
				return err
			}
			return app.Listen(fmt.Sprintf(":%s", port))
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (defaults to APP_PORT)")

	return cmd
}
