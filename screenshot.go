package ansiconsole

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScreenshotConfig controls how a ScreenConsole is rendered to an image.
type ScreenshotConfig struct {
	// Font face to use for rendering. If nil, uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// Palette supplies the 16 console colors (indices 0-15, ANSI order).
	// If nil, uses DefaultPalette.
	Palette *[256]color.RGBA

	// ShowCursor controls whether to render the cursor. Default true.
	ShowCursor *bool
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Screenshot renders the screen using basicfont and the default palette.
func (s *ScreenConsole) Screenshot() *image.RGBA {
	return s.ScreenshotWithConfig(&ScreenshotConfig{})
}

// ScreenshotWithConfig renders the screen to an RGBA image.
func (s *ScreenConsole) ScreenshotWithConfig(cfg *ScreenshotConfig) *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth := cfg.CellWidth
	if cellWidth == 0 {
		adv, _ := face.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7
		}
	}
	cellHeight := cfg.CellHeight
	if cellHeight == 0 {
		cellHeight = face.Metrics().Height.Ceil()
	}
	ascent := face.Metrics().Ascent.Ceil()

	palette := cfg.Palette
	if palette == nil {
		palette = &DefaultPalette
	}

	showCursor := true
	if cfg.ShowCursor != nil {
		showCursor = *cfg.ShowCursor
	}

	rows, cols := s.buffer.Rows(), s.buffer.Cols()
	imgWidth := cols * cellWidth
	imgHeight := rows * cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := s.buffer.Cell(row, col)
			if cell == nil || cell.IsWideSpacer() {
				continue
			}

			x := col * cellWidth
			y := row * cellHeight
			width := cellWidth
			if cell.IsWide() {
				width *= 2
			}

			fg := consoleRGBA(cell.Attr.Foreground(), palette)
			bg := consoleRGBA(cell.Attr.Background(), palette)
			if cell.Attr.HasFlag(ReverseVideo) {
				fg, bg = bg, fg
			}

			fillRect(img, x, y, width, cellHeight, bg)

			if cell.Char != 0 && cell.Char != ' ' {
				d := &font.Drawer{
					Dst:  img,
					Src:  image.NewUniform(fg),
					Face: face,
					Dot:  fixed.P(x, y+ascent),
				}
				d.DrawString(string(cell.Char))
			}

			if cell.Attr.HasFlag(Underscore) {
				underlineY := y + ascent + 2
				if underlineY < y+cellHeight {
					fillRect(img, x, underlineY, width, 1, fg)
				}
			}
		}
	}

	if showCursor {
		cursorX := s.cursor.Col * cellWidth
		cursorY := s.cursor.Row * cellHeight
		for py := 0; py < cellHeight; py++ {
			for px := 0; px < cellWidth; px++ {
				cx, cy := cursorX+px, cursorY+py
				if cx < imgWidth && cy < imgHeight {
					existing := img.RGBAAt(cx, cy)
					img.SetRGBA(cx, cy, color.RGBA{
						R: 255 - existing.R,
						G: 255 - existing.G,
						B: 255 - existing.B,
						A: 255,
					})
				}
			}
		}
	}

	return img
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			img.SetRGBA(px, py, c)
		}
	}
}
