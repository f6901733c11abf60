// Package share renders quote cards to PNG and hands them to a share target.
package share

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

// Card geometry and palette, in pixels at 2x.
const (
	CardWidth = 720

	padding       = 40
	badgePadX     = 20
	badgePadY     = 8
	badgeRadius   = 24
	badgeGap      = 24
	contentSize   = 36
	contentLeader = 1.45
	authorGap     = 32
	authorSize    = 28
	badgeSize     = 24
)

var (
	backgroundColor = color.RGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	badgeColor      = "#333333"
	badgeTextColor  = "#FFD700"
	contentColor    = "#FFFFFF"
	authorColor     = "#CCCCCC"
)

// Renderer draws quote cards with gg and the Go fonts.
type Renderer struct {
	dir    string
	italic *truetype.Font
	bold   *truetype.Font
}

var _ ports.CardRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer writing PNGs into dir.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create card dir: %w", err)
	}

	italic, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse italic font: %w", err)
	}

	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	return &Renderer{dir: dir, italic: italic, bold: bold}, nil
}

// Render implements ports.CardRenderer. The card shows the category badge,
// the quoted content and "— author", on the dark card background.
func (r *Renderer) Render(ctx context.Context, q domain.Quote) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Faces cache glyphs and are not safe for concurrent use.
	contentFace := truetype.NewFace(r.italic, &truetype.Options{Size: contentSize})
	authorFace := truetype.NewFace(r.bold, &truetype.Options{Size: authorSize})
	badgeFace := truetype.NewFace(r.bold, &truetype.Options{Size: badgeSize})

	defer contentFace.Close()
	defer authorFace.Close()
	defer badgeFace.Close()

	textWidth := float64(CardWidth - 2*padding)
	content := fmt.Sprintf("“%s”", q.Content)
	author := "— " + q.Author
	badge := strings.ToUpper(string(q.Category))

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(contentFace)
	lines := measure.WordWrap(content, textWidth)
	lineHeight := measure.FontHeight() * contentLeader

	measure.SetFontFace(badgeFace)
	badgeW, badgeH := measure.MeasureString(badge)
	badgeBox := badgeH + 2*badgePadY

	measure.SetFontFace(authorFace)
	_, authorH := measure.MeasureString(author)

	height := padding + badgeBox + badgeGap + float64(len(lines))*lineHeight + authorGap + authorH + padding

	dc := gg.NewContext(CardWidth, int(height+0.5))
	dc.SetColor(backgroundColor)
	dc.Clear()

	y := float64(padding)

	if badge != "" {
		dc.SetHexColor(badgeColor)
		dc.DrawRoundedRectangle(padding, y, badgeW+2*badgePadX, badgeBox, badgeRadius)
		dc.Fill()

		dc.SetFontFace(badgeFace)
		dc.SetHexColor(badgeTextColor)
		dc.DrawStringAnchored(badge, padding+badgePadX, y+badgeBox/2, 0, 0.35)
	}

	y += badgeBox + badgeGap

	dc.SetFontFace(contentFace)
	dc.SetHexColor(contentColor)
	dc.DrawStringWrapped(content, padding, y, 0, 0, textWidth, contentLeader, gg.AlignLeft)

	y += float64(len(lines))*lineHeight + authorGap

	dc.SetFontFace(authorFace)
	dc.SetHexColor(authorColor)
	dc.DrawStringAnchored(author, CardWidth-padding, y, 1, 1)

	path := filepath.Join(r.dir, cardName(q.ID))
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save card: %w", err)
	}

	return path, nil
}

// cardName maps a quote ID onto a safe file name.
func cardName(id string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)

	if safe == "" {
		safe = "card"
	}

	return "quote-" + safe + ".png"
}
