package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-accounts/internal/agent/config"
)

// NewSignInCmd создаёт CLI-команду для входа пользователя.
//
// Команда получает у сервера JWT и сохраняет его в локальный файл учётных данных.
// Токен затем используется командой me.
//
// Пример использования:
//
//	accounts signin --email aenderb@hotmail.com --password aender1234
func NewSignInCmd(app *App) *cobra.Command {
	var email, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Вход пользователя (получить JWT)",
		Long: `Вход пользователя.

Пример:
  accounts signin --email aenderb@hotmail.com --password aender1234
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := resolvePassword(cmd, password, passwordStdin)
			if err != nil {
				return err
			}

			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			c := NewAPIClient(app.ServerURL, app.Insecure)
			resp, err := c.SignIn(ctx, email, pass)
			if err != nil {
				return err
			}

			// сохраняем токен в состоянии приложения и в файл
			app.Creds.Token = resp.Token
			app.Creds.UserID = resp.User.ID
			app.Creds.Email = resp.User.Email
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "signin ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for signin")
	cmd.Flags().StringVar(&password, "password", "", "password for signin")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

// NewSignOutCmd создаёт команду, удаляющую сохранённый токен.
func NewSignOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Удалить сохранённый токен",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Creds = &config.Credentials{}
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signout ok")
			return nil
		},
	}
}
