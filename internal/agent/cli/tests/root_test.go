package tests

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-accounts/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-accounts/internal/agent/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-01-16")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	want := []string{"signup", "signin", "signout", "get", "me", "health", "version"}
	for _, w := range want {
		if !names[w] {
			t.Fatalf("expected subcommand %q to exist", w)
		}
	}
}

func TestNewRootCmd_DefaultServerFlag(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-01-16")

	f := cmd.PersistentFlags().Lookup("server")
	if f == nil {
		t.Fatalf("expected --server flag")
	}
	if f.DefValue != cli.DefaultServerURL {
		t.Fatalf("unexpected default server: %q", f.DefValue)
	}
}

func TestNewRootCmd_PersistentPreRunE_LoadsCreds(t *testing.T) {
	// креды кладём во временный файл, а не в домашнюю директорию
	p := filepath.Join(t.TempDir(), "credentials.json")
	t.Setenv(config.PathEnv, p)

	if err := config.Save(p, &config.Credentials{Token: "jwt-1"}); err != nil {
		t.Fatalf("Save creds: %v", err)
	}

	root := cli.NewRootCmd("1.0.0", "2026-01-16")

	// чтобы выполнить PersistentPreRunE, нужно реально запустить команду;
	// version не ходит в сеть
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "version=") || !strings.Contains(got, "build_date=") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNewRootCmd_PersistentPreRunE_ReturnsErrorOnBadCredsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	t.Setenv(config.PathEnv, p)

	// битый файл (невалидный формат для config.Load)
	if err := os.WriteFile(p, []byte("{not-json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	root := cli.NewRootCmd("1.0.0", "2026-01-16")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
