// Package cli реализует командный интерфейс (CLI) клиента сервиса аккаунтов.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку сохранённого JWT из локального файла учётных данных;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-accounts/internal/agent/api"
	"github.com/IvanChernomyrdin/go-accounts/internal/agent/config"
)

// DefaultServerURL — адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:8080"

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:8080").
	ServerURL string
	// Insecure отключает проверку TLS сертификата сервера.
	Insecure bool

	// CredsPath — путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds — загруженные учётные данные.
	// Может быть nil, если загрузка не выполнялась или завершилась ошибкой.
	Creds *config.Credentials
}

// requestContext возвращает контекст команды с таймаутом одного запроса.
func (a *App) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, api.DefaultTimeout)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
// В PersistentPreRunE определяется путь к файлу учётных данных и загружается токен.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Accounts CLI — клиент сервиса учётных записей",
		Long: `Accounts CLI.

Команды:
  signup    Регистрация нового пользователя
  signin    Вход (получить и сохранить JWT)
  signout   Удалить сохранённый JWT
  get       Показать пользователя по id
  me        Показать текущего пользователя
  health    Проверить доступность сервера
  version   Версия и дата сборки

Примеры:

Регистрация:
  accounts signup --name Aender --email aenderb@hotmail.com --password aender1234

Вход:
  accounts signin --email aenderb@hotmail.com
  (пароль будет запрошен в терминале, токен сохраняется в локальном конфиге)

Профиль:
  accounts get 3f1c1b7e-6a7e-4d7e-9b59-0c0f0a1e2d3c
  accounts me
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")

	cmd.AddCommand(NewSignUpCmd(app))
	cmd.AddCommand(NewSignInCmd(app))
	cmd.AddCommand(NewSignOutCmd(app))
	cmd.AddCommand(NewGetCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewHealthCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
