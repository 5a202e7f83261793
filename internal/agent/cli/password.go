package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrNoTerminal — пароль не передан флагом, а stdin не является терминалом.
var ErrNoTerminal = errors.New("password is required: use --password, --password-stdin or run in a terminal")

// readPassword читает пароль пользователя.
//
// Если fromStdin=true, пароль читается первой строкой из stdin команды
// (удобно для скриптов: echo pass | accounts signin --password-stdin ...).
// Иначе пароль запрашивается в терминале без эха.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// resolvePassword возвращает пароль из флага или запрашивает его.
func resolvePassword(cmd *cobra.Command, flagValue string, fromStdin bool) (string, error) {
	if flagValue != "" && !fromStdin {
		return flagValue, nil
	}
	return ReadPassword(cmd, fromStdin)
}
