// desktop-ai - настольная оболочка для веб-чата с ИИ.
//
// Работает в системном трее, показывает и скрывает окно чата по
// Ctrl+Shift+Space. Окно запускается отдельным процессом, код выхода
// которого возвращает лаунчер.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"desktop-ai/internal/app"
	"desktop-ai/internal/hotkey"
	"desktop-ai/internal/launcher"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

const logFileName = "desktop-ai.log"

var (
	showHelp    bool
	showVersion bool
	internalGUI bool
	configDir   string
	startHidden bool
	debug       bool
)

func init() {
	flag.BoolVarP(&showHelp, "help", "h", false, "Show this help")
	flag.BoolVarP(&showVersion, "version", "v", false, "Show version")
	flag.StringVar(&configDir, "config-dir", "", "Directory for config.json and the log file")
	flag.BoolVar(&startHidden, "hidden", false, "Start with the window hidden")
	flag.BoolVar(&debug, "debug", false, "Enable developer tools in the chat window")
	flag.BoolVar(&internalGUI, "internal-gui", false, "Internal: run as GUI subprocess")
	flag.CommandLine.MarkHidden("internal-gui")

	// Неизвестные аргументы передаются окну как есть
	flag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: desktop-ai [flags] [args...]\n\n")
	fmt.Fprintf(os.Stderr, "Desktop wrapper for a web AI chat, living in the system tray.\n\n")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if showHelp {
		flag.Usage()
		return
	}
	if showVersion {
		fmt.Printf("desktop-ai %s\n", Version)
		return
	}

	log.SetFlags(log.Ltime | log.Lshortfile)

	if !internalGUI {
		os.Exit(launch())
	}

	setupLogFile()
	log.Printf("desktop-ai %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(run)
}

// launch запускает окно дочерним процессом и возвращает его код выхода.
func launch() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code, err := launcher.Run(ctx, os.Args[1:])
	if err != nil {
		log.Printf("Ошибка запуска: %v", err)
	}
	return code
}

func run() {
	application, err := app.New(app.Options{
		ConfigDir:   configDir,
		StartHidden: startHidden,
		Debug:       debug,
	})
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	application.Run()
}

// setupLogFile дублирует лог в файл с ротацией рядом с настройками.
func setupLogFile() {
	dir := configDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			log.Printf("Лог только в консоль: %v", err)
			return
		}
		dir = filepath.Join(base, "desktop-ai")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Лог только в консоль: %v", err)
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    10, // МБ
		MaxBackups: 3,
		MaxAge:     28, // дней
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}
