package cli

import (
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-accounts/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
)
