// Package main содержит точку входа клиентского CLI-приложения.
//
// Пакет запускает консольный клиент и передаёт в CLI-слой версию и дату сборки.
package main

import "github.com/IvanChernomyrdin/go-accounts/internal/agent/cli"

var (
	// buildVersion содержит версию приложения, передаваемую при сборке.
	// По умолчанию используется значение "dev".
	buildVersion = "dev"
	// buildDate содержит дату сборки приложения.
	// По умолчанию используется значение "unknown".
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
