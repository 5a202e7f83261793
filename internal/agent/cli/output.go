package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// printUser выводит публичный профиль пользователя в формате key=value.
func printUser(w io.Writer, u models.User) {
	fmt.Fprintf(w, "id=%s\nname=%s\nemail=%s\ncreated_at=%s\n",
		u.ID, u.Name, u.Email, u.CreatedAt.Format(time.RFC3339))
}
