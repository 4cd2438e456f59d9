package cli

import (
	"Recipe-Grocery-Backend/cmd/config"
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/pkg/jwt"
	"Recipe-Grocery-Backend/pkg/user"
	"fmt"

	"github.com/spf13/cobra"
)

// NewTokenCommand registers the user if needed and prints a bearer token.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	req := domain.IssueTokenRequest{}

	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Issue an API token for a user",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}

			userService := user.NewUserService(user.NewUserRepository(db), jwt.NewJWTService())
			res, err := userService.IssueToken(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user_id: %s\ntoken: %s\n", res.UserID, res.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "user email")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name for a new user")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
