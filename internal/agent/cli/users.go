package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrNotSignedIn — в локальном файле нет токена.
var ErrNotSignedIn = errors.New("not signed in: run `accounts signin` first")

// NewGetCmd создаёт команду получения публичного профиля по id.
//
// Пример:
//
//	accounts get 3f1c1b7e-6a7e-4d7e-9b59-0c0f0a1e2d3c
func NewGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Показать пользователя по id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			u, err := NewAPIClient(app.ServerURL, app.Insecure).GetUser(ctx, args[0])
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}
}

// NewMeCmd создаёт команду, которая показывает владельца сохранённого токена.
func NewMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Показать текущего пользователя (по сохранённому токену)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.Token == "" {
				return ErrNotSignedIn
			}

			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			u, err := NewAPIClient(app.ServerURL, app.Insecure).Me(ctx, app.Creds.Token)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}
}

// NewHealthCmd создаёт команду проверки доступности сервера.
func NewHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Проверить доступность сервера",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			resp, err := NewAPIClient(app.ServerURL, app.Insecure).Health(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status=%s\n", resp.Status)
			return nil
		},
	}
}
