// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// Icon - иконка трея, когда окно показано.
//
//go:embed icon.png
var Icon []byte

// IconHidden - иконка трея, когда окно скрыто (серая).
//
//go:embed icon_hidden.png
var IconHidden []byte
