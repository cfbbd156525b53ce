//go:build ignore

// Скрипт для генерации иконок трея.
// Запуск: go run scripts/generate_icons.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	icons := []struct {
		name  string
		color color.RGBA
	}{
		{"icon.png", color.RGBA{88, 166, 255, 255}},         // Синий: окно показано
		{"icon_hidden.png", color.RGBA{128, 128, 128, 255}}, // Серый: окно скрыто
	}

	for _, icon := range icons {
		path := filepath.Join(dir, icon.name)
		if err := generateIcon(path, icon.color); err != nil {
			log.Fatalf("Ошибка генерации %s: %v", icon.name, err)
		}
		log.Printf("Создан: %s", path)
	}
}

// generateIcon рисует облачко чата: скруглённый прямоугольник с хвостиком.
func generateIcon(path string, c color.RGBA) error {
	const (
		size   = 64
		left   = 8
		top    = 10
		right  = 56
		bottom = 42
		radius = 10
	)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	inBubble := func(x, y int) bool {
		if x < left || x >= right || y < top || y >= bottom {
			return false
		}
		cx, cy := x, y
		switch {
		case x < left+radius:
			cx = left + radius
		case x >= right-radius:
			cx = right - radius - 1
		}
		switch {
		case y < top+radius:
			cy = top + radius
		case y >= bottom-radius:
			cy = bottom - radius - 1
		}
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= radius*radius
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inBubble(x, y) {
				img.Set(x, y, c)
			}
		}
	}

	// Хвостик снизу слева
	for y := bottom; y < bottom+12; y++ {
		for x := 18; x < 18+(bottom+12-y); x++ {
			img.Set(x, y, c)
		}
	}

	// Три точки
	white := color.RGBA{255, 255, 255, 255}
	for _, px := range []int{22, 32, 42} {
		for y := 23; y < 30; y++ {
			for x := px - 3; x <= px+3; x++ {
				dx, dy := x-px, y-26
				if dx*dx+dy*dy <= 9 {
					img.Set(x, y, white)
				}
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
