package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd создаёт CLI-команду для отображения информации о сборке.
//
// Выводит версию и дату сборки, переданные при компиляции через -ldflags,
// а также версию Go и платформу.
//
// Пример использования:
//
//	accounts version
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "version=%s\n", buildVersion)
			fmt.Fprintf(w, "build_date=%s\n", buildDate)
			fmt.Fprintf(w, "go=%s\n", runtime.Version())
			fmt.Fprintf(w, "platform=%s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
