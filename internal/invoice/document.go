package invoice

import (
	"time"
)

// A4 geometry in PDF points. Blocks are positioned from the top-left corner.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	PageMargin = 40.0
)

// BlockKind discriminates the payload of a Block.
type BlockKind string

const (
	BlockText  BlockKind = "text"
	BlockImage BlockKind = "image"
	BlockTable BlockKind = "table"
	BlockRule  BlockKind = "rule"
)

// TextStyle carries the presentation hints a rendering back end needs.
type TextStyle struct {
	FontSize  float64 `json:"font_size"`
	Bold      bool    `json:"bold,omitempty"`
	Uppercase bool    `json:"uppercase,omitempty"`
	Color     string  `json:"color,omitempty"`
	Align     string  `json:"align,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
}

// TableColumn describes one column of a table block.
type TableColumn struct {
	Title string  `json:"title"`
	Width float64 `json:"width"`
	Align string  `json:"align"`
}

// Block is one positioned element of the document. Exactly one of Lines,
// ImageRef, or Columns/Rows is populated, per Kind.
type Block struct {
	Section string        `json:"section"`
	Kind    BlockKind     `json:"kind"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Lines   []string      `json:"lines,omitempty"`
	Style   *TextStyle    `json:"style,omitempty"`
	Image   *ImageRef     `json:"image,omitempty"`
	Columns []TableColumn `json:"columns,omitempty"`
	Rows    [][]string    `json:"rows,omitempty"`
}

// ImageRef points a rendering back end at a fetched asset.
type ImageRef struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	PixelWidth  int    `json:"pixel_width,omitempty"`
	PixelHeight int    `json:"pixel_height,omitempty"`
}

// Document is a structured invoice description: an ordered sequence of
// positioned blocks that any back end (PDF, HTML) can consume.
type Document struct {
	InvoiceNumber string    `json:"invoice_number"`
	GeneratedFor  string    `json:"generated_for"`
	Date          time.Time `json:"date"`
	PageWidth     float64   `json:"page_width"`
	PageHeight    float64   `json:"page_height"`
	Blocks        []Block   `json:"blocks"`
	MissingAssets []string  `json:"missing_assets,omitempty"`
}
