// ABOUTME: ANSI half-block renderer that fits an image into a cell box
// ABOUTME: Uses ▄ with fg/bg true-color escapes so each cell shows two vertical pixels

package image

import (
	"fmt"
	goimage "image"
	"strings"

	"golang.org/x/image/draw"
)

// FitCells returns the largest cell size (cols x rows) at most maxCols x
// maxRows that keeps the aspect ratio of a srcW x srcH image, counting
// two pixels per row. Images are never scaled up.
func FitCells(srcW, srcH, maxCols, maxRows int) (cols, rows int) {
	if srcW <= 0 || srcH <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols, pxH := srcW, srcH
	if cols > maxCols {
		pxH = pxH * maxCols / cols
		cols = maxCols
	}
	if (pxH+1)/2 > maxRows {
		cols = cols * maxRows * 2 / max(pxH, 1)
		pxH = maxRows * 2
	}
	return max(cols, 1), max((pxH+1)/2, 1)
}

// RenderHalfBlock converts img to lines of ANSI art no larger than
// maxCols x maxRows cells. Every line ends with a reset.
func RenderHalfBlock(img goimage.Image, maxCols, maxRows int) []string {
	bounds := img.Bounds()
	cols, rows := FitCells(bounds.Dx(), bounds.Dy(), maxCols, maxRows)
	if cols == 0 {
		return nil
	}

	pxH := rows * 2
	var scaled goimage.Image = img
	if cols != bounds.Dx() || pxH != bounds.Dy() {
		dst := goimage.NewRGBA(goimage.Rect(0, 0, cols, pxH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		scaled = dst
	}
	sb := scaled.Bounds()

	lines := make([]string, 0, rows)
	for y := 0; y < rows; y++ {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			tr, tg, tb := rgbAt(scaled, sb.Min.X+x, sb.Min.Y+2*y)
			br, bg, bb := rgbAt(scaled, sb.Min.X+x, sb.Min.Y+2*y+1)
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm▄", tr, tg, tb, br, bg, bb)
		}
		b.WriteString("\x1b[0m")
		lines = append(lines, b.String())
	}
	return lines
}

// rgbAt extracts the 8-bit RGB components of the pixel at (x, y); pixels
// outside the image are black.
func rgbAt(img goimage.Image, x, y int) (uint8, uint8, uint8) {
	if !(goimage.Point{X: x, Y: y}).In(img.Bounds()) {
		return 0, 0, 0
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
