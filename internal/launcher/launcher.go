// Package launcher запускает графическую часть приложения дочерним процессом
// и передаёт его код выхода.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// GUIFlag - скрытый флаг, с которым запускается дочерний процесс.
const GUIFlag = "--internal-gui"

// stopTimeout - сколько ждём завершения дочернего процесса после прерывания.
const stopTimeout = 5 * time.Second

// Run перезапускает текущий исполняемый файл с GUIFlag и всеми аргументами
// и ждёт его завершения. Возвращает код выхода дочернего процесса.
// Отмена ctx прерывает дочерний процесс.
func Run(ctx context.Context, args []string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 1, fmt.Errorf("путь к исполняемому файлу: %w", err)
	}
	return run(ctx, exe, childArgs(args))
}

// childArgs добавляет GUIFlag к аргументам, если его ещё нет.
func childArgs(args []string) []string {
	for _, a := range args {
		if a == GUIFlag {
			return append([]string(nil), args...)
		}
	}
	return append([]string{GUIFlag}, args...)
}

func run(ctx context.Context, exe string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	// Сначала просим завершиться, через stopTimeout убиваем
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = stopTimeout

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Процесс убит сигналом
			code = 1
		}
		return code, nil
	}
	if err != nil {
		return 1, fmt.Errorf("запуск %s: %w", exe, err)
	}
	return 0, nil
}
