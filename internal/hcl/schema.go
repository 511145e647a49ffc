package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// Block type names accepted inside widgets and containers.
const (
	blockText        = "text"
	blockHBox        = "hbox"
	blockVBox        = "vbox"
	blockGroup       = "group"
	blockIf          = "if"
	blockFetchData   = "fetch_data"
	blockGraph       = "graph"
	blockImportFont  = "import_font"
	blockMargin      = "margin"
	blockSetPosition = "set_position"
	blockOverlap     = "overlap"
)

var componentBlocks = []string{
	blockText, blockHBox, blockVBox, blockGroup, blockIf, blockFetchData,
	blockGraph, blockImportFont, blockMargin, blockSetPosition, blockOverlap,
}

type widgetSchema struct {
	Name     string          `hcl:"name,label"`
	Enabled  *bool           `hcl:"enabled,optional"`
	Position *positionSchema `hcl:"position,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type positionSchema struct {
	X       string   `hcl:"x,optional"`
	XOffset string   `hcl:"x_offset,optional"`
	Y       string   `hcl:"y,optional"`
	YOffset string   `hcl:"y_offset,optional"`
	Zoom    *float64 `hcl:"zoom,optional"`
}

type hboxSchema struct {
	YAlign string   `hcl:"y_align,optional"`
	Remain hcl.Body `hcl:",remain"`
}

type vboxSchema struct {
	XAlign string   `hcl:"x_align,optional"`
	Remain hcl.Body `hcl:",remain"`
}

type containerSchema struct {
	Remain hcl.Body `hcl:",remain"`
}

type textSchema struct {
	Content    hcl.Expression    `hcl:"content"`
	Color      *string           `hcl:"color,optional"`
	TextAlign  string            `hcl:"text_align,optional"`
	FontSize   *float64          `hcl:"font_size,optional"`
	FontFamily string            `hcl:"font_family,optional"`
	FontWeight string            `hcl:"font_weight,optional"`
	Variables  []*variableSchema `hcl:"variable,block"`
}

type variableSchema struct {
	Name      string   `hcl:"name,label"`
	Format    string   `hcl:"format,optional"`
	Precision *int     `hcl:"precision,optional"`
	DivideBy  *float64 `hcl:"divide_by,optional"`
	Suffix    string   `hcl:"suffix,optional"`
}

type ifSchema struct {
	Cond hcl.Expression   `hcl:"cond"`
	Then *containerSchema `hcl:"then,block"`
	Else *containerSchema `hcl:"else,block"`
}

type fetchDataSchema struct {
	Name   string `hcl:"name"`
	Source string `hcl:"source"`
	Query  string `hcl:"query"`
	Format string `hcl:"format"`
}

type graphSchema struct {
	Name        string   `hcl:"name"`
	Width       string   `hcl:"width"`
	Height      string   `hcl:"height"`
	Min         float64  `hcl:"min"`
	Max         float64  `hcl:"max"`
	SampleCount *int     `hcl:"sample_count,optional"`
	StrokeColor string   `hcl:"stroke_color"`
	StrokeWidth float64  `hcl:"stroke_width"`
	FillColor   *string  `hcl:"fill_color,optional"`
	FillOpacity *float64 `hcl:"fill_opacity,optional"`
}

type importFontSchema struct {
	URL string `hcl:"url"`
}

type marginSchema struct {
	Size string `hcl:"size"`
}

type setPositionSchema struct {
	To string `hcl:"to"`
}
