package webview

// Отступы окна от правого и нижнего края экрана
const (
	screenMarginRight  = 10
	screenMarginBottom = 60
)

// nativeWindow управляет окном средствами платформы.
// Методы вызываются только в UI-потоке.
type nativeWindow interface {
	Show()
	Hide()
	SetAlwaysOnTop(on bool)
	MoveBy(dx, dy int)
	// Prepare убирает рамку и кнопку в панели задач и ставит окно
	// в правый нижний угол экрана.
	Prepare(width, height int)
	// WatchCrash вызывает fn, когда процесс страницы завершился аварийно.
	// Без поддержки платформы ничего не делает.
	WatchCrash(fn func(reason string))
}

// cornerPosition возвращает левый верхний угол окна у правого нижнего края экрана.
func cornerPosition(screenW, screenH, width, height int) (x, y int) {
	x = screenW - width - screenMarginRight
	y = screenH - height - screenMarginBottom
	return max(x, 0), max(y, 0)
}
