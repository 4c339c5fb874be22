// Package indicator draws the tray icon for a keyboard layout.
package indicator

import (
	"bytes"
	"fmt"
	"github.com/sergeymakinen/go-ico"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode/utf8"
)

const IconSize = 16

var (
	// DefaultBackground and DefaultForeground are the stock highlight colors.
	DefaultBackground = color.RGBA{R: 0x00, G: 0x78, B: 0xD7, A: 0xFF}
	DefaultForeground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

type Style struct {
	Background color.Color
	Foreground color.Color
	Size       int
}

func DefaultStyle() Style {
	return Style{
		Background: DefaultBackground,
		Foreground: DefaultForeground,
		Size:       IconSize,
	}
}

// Label turns a language abbreviation into the two characters on the icon:
// "ENU" becomes "EN", anything shorter than two letters becomes "??".
func Label(abbreviation string) string {
	abbreviation = strings.ToUpper(strings.TrimSpace(abbreviation))
	if utf8.RuneCountInString(abbreviation) < 2 {
		return "??"
	}
	return string([]rune(abbreviation)[:2])
}

// Render draws label centered on a filled square.
func Render(label string, style Style) *image.RGBA {
	size := style.Size
	if size <= 0 {
		size = IconSize
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(style.Foreground),
		Face: face,
	}

	width := drawer.MeasureString(label).Ceil()
	x := (size - width) / 2
	y := (size-face.Height)/2 + face.Ascent
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(label)

	return img
}

// Icon renders label and encodes it as an .ico file, the format the tray
// expects on Windows.
func Icon(label string, style Style) ([]byte, error) {
	var buf bytes.Buffer
	if err := ico.Encode(&buf, Render(label, style)); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return buf.Bytes(), nil
}
