// Package app содержит основную логику приложения.
package app

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"desktop-ai/internal/config"
	"desktop-ai/internal/dialog"
	"desktop-ai/internal/hotkey"
	"desktop-ai/internal/i18n"
	"desktop-ai/internal/ipc"
	"desktop-ai/internal/navigation"
	"desktop-ai/internal/notify"
	"desktop-ai/internal/settings"
	"desktop-ai/internal/shortcut"
	"desktop-ai/internal/tray"
	"desktop-ai/internal/webview"
)

const (
	windowTitle  = "desktop-ai"
	windowWidth  = 400
	windowHeight = 700

	// shutdownTimeout - сколько ждём обработку оставшихся событий при выходе
	shutdownTimeout = 2 * time.Second
)

// Options задаёт параметры запуска.
type Options struct {
	ConfigDir   string // каталог настроек, пусто - каталог пользователя
	StartHidden bool   // не показывать окно при запуске
	Debug       bool   // инструменты разработчика в окне браузера
}

// surface - окно браузера с чатом.
type surface interface {
	windowControl
	Navigate(url string)
	SetAlwaysOnTop(on bool)
	MoveBy(dx, dy int)
}

// registrar регистрирует глобальные горячие клавиши.
type registrar interface {
	Register(id string, b shortcut.Binding, onPress func()) error
	UnregisterAll()
}

// overlay - окно настроек поверх приложения.
type overlay interface {
	Show()
	Hide()
	IsVisible() bool
}

// trayUI - иконка и меню в трее.
type trayUI interface {
	SetVisible(visible bool)
	SetAlwaysOnTop(on bool)
	SetShowOnStartup(on bool)
	RefreshUI()
	Quit()
}

// errorNotifier показывает всплывающие уведомления об ошибках.
type errorNotifier interface {
	Error(msg string)
}

// App представляет главное приложение.
type App struct {
	opts     Options
	config   *config.Config
	loop     *ipc.Loop
	surface  surface
	web      *webview.Surface
	nav      *navigation.Controller
	hotkeys  registrar
	tray     trayUI
	icon     *tray.Tray
	notifier errorNotifier
	reporter *dialog.Reporter
	vis      *visibility

	settingsWin overlay
	keybindWin  overlay

	// Поля ниже меняются только в цикле событий
	openOverlays int
	quitting     bool
	uiStopped    bool // цикл окна уже завершён

	cancel   context.CancelFunc
	quitOnce sync.Once
}

// New создаёт новое приложение.
func New(opts Options) (*App, error) {
	cfg, err := config.New(opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	log.Printf("Настройки: %s", cfg.Path())

	// Инициализируем язык интерфейса из конфига
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	app := &App{
		opts:     opts,
		config:   cfg,
		loop:     ipc.NewLoop(0),
		hotkeys:  hotkey.New(),
		notifier: notify.New(true),
		reporter: dialog.NewReporter(),
	}

	web, err := webview.New(webview.Options{
		Title:  windowTitle,
		Width:  windowWidth,
		Height: windowHeight,
		Debug:  opts.Debug,
	}, app.onRendererMessage)
	if err != nil {
		return nil, err
	}
	app.web = web
	app.surface = web
	app.nav = navigation.New(navigation.DefaultURL, web, app.reporter)
	app.vis = newVisibility(web, hideDelay)

	// Окна настроек: адрес сервиса и язык, и отдельно горячие клавиши
	settingsWin := settings.New(settings.KindSettings, cfg)
	keybindWin := settings.New(settings.KindKeybindings, cfg)
	for _, w := range []*settings.Window{settingsWin, keybindWin} {
		w.OnDone(func(r settings.Result) {
			app.loop.Post(func() { app.applyOverlayResult(r) })
		})
		w.OnClose(func() {
			app.loop.Post(app.overlayClosed)
		})
		w.OnUILangChange(func(lang i18n.Language) {
			log.Printf("Язык интерфейса: %s", lang)
			app.loop.Post(app.tray.RefreshUI)
		})
	}
	app.settingsWin = settingsWin
	app.keybindWin = keybindWin

	tr := tray.New(tray.Callbacks{
		OnShow: func() {
			app.loop.Post(func() { app.vis.Set(true) })
		},
		OnSettings: func() {
			app.loop.Post(func() { app.openOverlay(app.settingsWin) })
		},
		OnKeybindings: func() {
			app.loop.Post(func() { app.openOverlay(app.keybindWin) })
		},
		OnAlwaysOnTop: func(checked bool) {
			app.loop.Post(func() { app.setAlwaysOnTop(checked) })
		},
		OnShowOnStartup: func(checked bool) {
			app.loop.Post(func() { app.setShowOnStartup(checked) })
		},
		OnQuit: func() {
			app.loop.Post(app.Quit)
		},
	})
	app.tray = tr
	app.icon = tr
	app.vis.onChange = tr.SetVisible

	cfg.OnChange(func(keys []string) {
		app.loop.Post(func() { app.applySettings(keys, true) })
	})

	return app, nil
}

// Run запускает приложение и блокирует главный поток до выхода.
func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	go a.loop.Run(ctx)
	go func() {
		if err := a.config.Watch(ctx); err != nil {
			log.Printf("Наблюдение за настройками недоступно: %v", err)
		}
	}()

	a.icon.Register(a.config.AlwaysOnTop(), a.config.ShowOnStartup())

	a.loop.Post(a.start)

	log.Println("Приложение запущено")
	a.web.Run()

	a.shutdown()
}

// start выполняется первым событием цикла.
func (a *App) start() {
	// Окно всегда поверх остальных, настройка влияет только на скрытие при потере фокуса
	a.surface.SetAlwaysOnTop(true)
	a.registerKeybindings()
	a.nav.Resolve(a.config.ServiceURL())

	if a.opts.StartHidden || !a.config.ShowOnStartup() {
		a.vis.HideNow()
		return
	}
	a.vis.Set(true)
}

// Quit завершает приложение. Вызывается из цикла событий.
func (a *App) Quit() {
	a.quitOnce.Do(func() {
		log.Println("Завершение работы...")
		a.quitting = true
		a.vis.Stop()

		// Закрываем окна настроек, пока цикл событий ещё работает
		for _, w := range []overlay{a.settingsWin, a.keybindWin} {
			if w != nil && w.IsVisible() {
				w.Hide()
			}
		}

		a.hotkeys.UnregisterAll()
		if a.tray != nil {
			a.tray.Quit()
		}
		if a.web != nil && !a.uiStopped {
			a.web.Terminate()
		}
	})
}

// shutdown освобождает ресурсы после выхода из цикла окна.
func (a *App) shutdown() {
	// Окно могли закрыть средствами системы, минуя Quit
	a.loop.Post(func() {
		a.uiStopped = true
		a.Quit()
	})
	a.loop.Close()
	select {
	case <-a.loop.Done():
	case <-time.After(shutdownTimeout):
		log.Println("Очередь событий не успела завершиться")
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.closeReporter()
	a.web.Destroy()
	log.Println("Приложение остановлено")
}

// closeReporter дожидается открытого диалога ошибки, но не дольше shutdownTimeout.
func (a *App) closeReporter() {
	if a.reporter == nil {
		return
	}
	closed := make(chan struct{})
	go func() {
		a.reporter.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(shutdownTimeout):
		log.Println("Диалог ошибки не закрыт, выходим без него")
	}
}

// onRendererMessage получает сообщения страницы и ставит их в очередь.
func (a *App) onRendererMessage(ch ipc.Channel, payload json.RawMessage) {
	a.loop.Post(func() {
		if err := ipc.Route(a, ch, payload); err != nil {
			log.Printf("Сообщение страницы отклонено: %v", err)
		}
	})
}

// openOverlay показывает окно настроек. Пока оно открыто, глобальные
// горячие клавиши сняты, чтобы их можно было записать.
func (a *App) openOverlay(w overlay) {
	if a.quitting || w == nil || w.IsVisible() {
		return
	}
	a.openOverlays++
	a.hotkeys.UnregisterAll()
	w.Show()
}

// overlayClosed вызывается после закрытия окна настроек.
func (a *App) overlayClosed() {
	if a.openOverlays > 0 {
		a.openOverlays--
	}
	if a.openOverlays == 0 && !a.quitting {
		a.registerKeybindings()
	}
}

// applyOverlayResult сохраняет подтверждённые изменения окна настроек.
func (a *App) applyOverlayResult(r settings.Result) {
	for key, accel := range r.Shortcuts {
		if err := a.config.Set(key, accel); err != nil {
			a.notifier.Error(err.Error())
		}
	}

	if !r.HasServiceURL {
		return
	}
	if err := a.config.Set(config.KeyServiceURL, r.ServiceURL); err != nil {
		a.notifier.Error(err.Error())
	}
	target := r.ServiceURL
	if target == "" {
		target = a.nav.DefaultURL()
	}
	a.nav.RequestNavigate(target)
}

func (a *App) setAlwaysOnTop(on bool) {
	if err := a.config.Set(config.KeyAlwaysOnTop, on); err != nil {
		a.notifier.Error(err.Error())
	}
	a.applySettings([]string{config.KeyAlwaysOnTop}, false)
}

func (a *App) setShowOnStartup(on bool) {
	if err := a.config.Set(config.KeyShowOnStartup, on); err != nil {
		a.notifier.Error(err.Error())
	}
}

// applySettings применяет изменившиеся ключи. external - изменения пришли
// из файла, тогда смена адреса сервиса сразу открывает его.
func (a *App) applySettings(keys []string, external bool) {
	rebind := false
	for _, key := range keys {
		switch key {
		case config.KeyToggleVisibilityShortcut, config.KeyToggleMicShortcut:
			rebind = true
		case config.KeyAlwaysOnTop:
			if a.tray != nil {
				a.tray.SetAlwaysOnTop(a.config.AlwaysOnTop())
			}
		case config.KeyShowOnStartup:
			if a.tray != nil {
				a.tray.SetShowOnStartup(a.config.ShowOnStartup())
			}
		case config.KeyUILanguage:
			if lang := a.config.UILanguage(); lang != "" {
				i18n.SetLanguage(i18n.Language(lang))
			}
			if a.tray != nil {
				a.tray.RefreshUI()
			}
		case config.KeyServiceURL:
			if !external {
				continue
			}
			target := a.config.ServiceURL()
			if target == "" {
				target = a.nav.DefaultURL()
			}
			a.nav.RequestNavigate(target)
		}
	}
	if rebind {
		a.registerKeybindings()
	}
}
