package service

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pms-portfolio/ecas-parser/dto"
)

// PDFProcessor opens a (possibly encrypted) statement and yields its text.
// ExtractBlocks returns position-tagged blocks in reading order; ExtractText
// flattens those blocks into one whitespace-collapsed string.
type PDFProcessor interface {
	ExtractBlocks(pdfData []byte, password string) ([]dto.TextBlock, error)
	ExtractText(pdfData []byte, password string) (string, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

const (
	// Fragments whose baselines sit within this distance belong to one
	// visual line.
	lineTolerance = 2.0
	// A horizontal gap this wide splits a visual line into separate
	// segments; CAMS column pairing depends on it.
	columnGap = 18.0
	// Lines further apart than this never share a block.
	maxBlockGap = 14.0
)

var (
	nonASCIIRe = regexp.MustCompile(`[^\x20-\x7E]+`)
	wsRunRe    = regexp.MustCompile(`\s+`)
)

// validate runs a structural pass with pdfcpu before any extraction. It is
// what separates "wrong password" from "broken file" for the caller.
func (p *pdfProcessor) validate(pdfData []byte, password string) error {
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	if err := api.Validate(bytes.NewReader(pdfData), conf); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "password") {
			return fmt.Errorf("%w: %v", ErrInvalidPassword, err)
		}
		return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return nil
}

func (p *pdfProcessor) open(pdfData []byte, password string) (*pdf.Reader, error) {
	attempts := 0
	r, err := pdf.NewReaderEncrypted(bytes.NewReader(pdfData), int64(len(pdfData)), func() string {
		attempts++
		if attempts > 1 {
			return ""
		}
		return password
	})
	if err == pdf.ErrInvalidPassword {
		return nil, ErrInvalidPassword
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return r, nil
}

func (p *pdfProcessor) ExtractBlocks(pdfData []byte, password string) ([]dto.TextBlock, error) {
	if err := p.validate(pdfData, password); err != nil {
		return nil, err
	}
	r, err := p.open(pdfData, password)
	if err != nil {
		return nil, err
	}

	var blocks []dto.TextBlock
	totalPages := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		// The pdf library panics on some malformed content streams; a bad
		// page is skipped, not fatal.
		func() {
			defer func() { _ = recover() }()

			page := r.Page(pageIndex)
			if page.V.IsNull() {
				return
			}
			blocks = append(blocks, pageBlocks(page, pageIndex)...)
		}()
	}
	return blocks, nil
}

// ExtractText returns the whole document as one ASCII-clean string: blocks
// in reading order, whitespace runs collapsed. This is the input shape the
// NSDL and CDSL pattern tables expect.
func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	blocks, err := p.ExtractBlocks(pdfData, password)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(blk.Text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(wsRunRe.ReplaceAllString(b.String(), " ")), nil
}

// fragment is one positioned text run, with Y flipped to grow downward.
type fragment struct {
	x, y, w, size float64
	s             string
}

// segment is a horizontal run of fragments on one visual line. Column gaps
// split a line into several segments.
type segment struct {
	x0, x1, y float64
	text      string
}

func pageBlocks(page pdf.Page, pageIndex int) []dto.TextBlock {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	height := pageHeight(page, content.Text)

	frags := make([]fragment, 0, len(content.Text))
	for _, t := range content.Text {
		frags = append(frags, fragment{
			x:    t.X,
			y:    height - t.Y,
			w:    t.W,
			size: t.FontSize,
			s:    t.S,
		})
	}

	segments := buildSegments(frags)
	blocks := buildBlocks(segments, pageIndex)

	sort.SliceStable(blocks, func(i, j int) bool {
		yi, yj := math.Round(blocks[i].Y*10)/10, math.Round(blocks[j].Y*10)/10
		if yi != yj {
			return yi < yj
		}
		return blocks[i].X < blocks[j].X
	})
	return blocks
}

// pageHeight reads the MediaBox; when it is missing or inherited from an
// unreachable parent node, the topmost fragment stands in for it.
func pageHeight(page pdf.Page, texts []pdf.Text) float64 {
	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Len() == 4 {
		if h := mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64(); h > 0 {
			return h
		}
	}
	var maxY float64
	for _, t := range texts {
		if t.Y+t.FontSize > maxY {
			maxY = t.Y + t.FontSize
		}
	}
	return maxY
}

func buildSegments(frags []fragment) []segment {
	sort.SliceStable(frags, func(i, j int) bool {
		if math.Abs(frags[i].y-frags[j].y) > lineTolerance {
			return frags[i].y < frags[j].y
		}
		return frags[i].x < frags[j].x
	})

	var segments []segment
	var cur *segment
	var lastEnd float64

	flush := func() {
		if cur == nil {
			return
		}
		cur.text = cleanLine(cur.text)
		if cur.text != "" {
			segments = append(segments, *cur)
		}
		cur = nil
	}

	for _, f := range frags {
		end := f.x + f.w
		sameLine := cur != nil && math.Abs(f.y-cur.y) <= lineTolerance

		if !sameLine || f.x-lastEnd > columnGap {
			flush()
			cur = &segment{x0: f.x, x1: end, y: f.y, text: f.s}
			lastEnd = end
			continue
		}

		// A small gap between runs is a word break the PDF encoded as
		// positioning rather than a space glyph.
		if f.x-lastEnd > math.Max(1.0, f.size*0.25) && !strings.HasSuffix(cur.text, " ") {
			cur.text += " "
		}
		cur.text += f.s
		if end > cur.x1 {
			cur.x1 = end
		}
		lastEnd = end
	}
	flush()
	return segments
}

func cleanLine(s string) string {
	s = nonASCIIRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(wsRunRe.ReplaceAllString(s, " "))
}

// buildBlocks stacks segments into blocks: a segment joins the open block
// beneath which it sits when the vertical gap is small and the x-ranges
// overlap. Side-by-side columns therefore stay separate blocks.
func buildBlocks(segments []segment, pageIndex int) []dto.TextBlock {
	type openBlock struct {
		x0, x1, y0, y1 float64
		lines          []string
	}
	var open []*openBlock

	for _, s := range segments {
		var target *openBlock
		for _, b := range open {
			gap := s.y - b.y1
			if gap >= -lineTolerance && gap <= maxBlockGap && s.x0 < b.x1 && b.x0 < s.x1 {
				target = b
				break
			}
		}
		if target == nil {
			open = append(open, &openBlock{x0: s.x0, x1: s.x1, y0: s.y, y1: s.y, lines: []string{s.text}})
			continue
		}
		if s.y-target.y1 > lineTolerance {
			target.lines = append(target.lines, s.text)
		} else {
			target.lines[len(target.lines)-1] += " " + s.text
		}
		target.x0 = math.Min(target.x0, s.x0)
		target.x1 = math.Max(target.x1, s.x1)
		target.y1 = math.Max(target.y1, s.y)
	}

	blocks := make([]dto.TextBlock, 0, len(open))
	for _, b := range open {
		text := strings.TrimSpace(strings.Join(b.lines, "\n"))
		if text == "" {
			continue
		}
		blocks = append(blocks, dto.TextBlock{
			Page:   pageIndex,
			X:      b.x0,
			Y:      b.y0,
			Width:  b.x1 - b.x0,
			Height: b.y1 - b.y0,
			Text:   text,
		})
	}
	return blocks
}
