package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/IvanChernomyrdin/go-accounts/internal/agent/api"
	"github.com/IvanChernomyrdin/go-accounts/internal/agent/cli"
)

// сколько ждём, пока сервер ответит на /health
const startupTimeout = 30 * time.Second

func main() {
	fmt.Println("Запуск Accounts...")

	clientName := "accounts"
	if runtime.GOOS == "windows" {
		clientName = "accounts.exe"
	}
	// запускаем сервер на фоне
	server := exec.Command("go", "run", "./cmd/server/main.go")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	if err := waitHealthy(cli.DefaultServerURL, startupTimeout); err != nil {
		fmt.Printf("Сервер не поднялся: %v\n", err)
		server.Process.Kill()
		return
	}

	// собираем клиента
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/accounts/main.go")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		build.Run()
		// если не винда даём права
		if runtime.GOOS != "windows" {
			os.Chmod(clientName, 0o755)
		}
	}

	fmt.Println("Сервер запущен")
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\accounts.exe")
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./accounts")
	}

	server.Wait()
}

// waitHealthy опрашивает /health, пока сервер не ответит "ok" или не истечёт timeout.
func waitHealthy(baseURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c := api.NewClient(baseURL, false)
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	for {
		resp, err := c.Health(ctx)
		if err == nil && resp.Status == "ok" {
			return nil
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return err
			}
			return ctx.Err()
		case <-tick.C:
		}
	}
}
