package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSignUpCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Пример использования:
//
//	accounts signup --name Aender --email aenderb@hotmail.com --password aender1234
//
// Если --password не указан, пароль запрашивается в терминале.
func NewSignUpCmd(app *App) *cobra.Command {
	var name, email, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  accounts signup --name Aender --email aenderb@hotmail.com --password aender1234
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := resolvePassword(cmd, password, passwordStdin)
			if err != nil {
				return err
			}

			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			c := NewAPIClient(app.ServerURL, app.Insecure)
			u, err := c.SignUp(ctx, name, email, pass)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "signup ok")
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&password, "password", "", "password for registration")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}
