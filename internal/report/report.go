// Package report records what a conversion did and what it could not do.
//
// A Report is created at the start of a conversion, filled while the
// document is rewritten and handed back with the output. Logs are
// append-only and keep insertion order.
package report

// Dialect names the output template language a report describes.
type Dialect string

const (
	Twig      Dialect = "twig"
	WordPress Dialect = "wordpress"
)

// Asset kinds.
const (
	KindImage       = "img"
	KindCSS         = "css"
	KindJS          = "js"
	KindFavicon     = "favicon"
	KindSource      = "source"
	KindVideoPoster = "video-poster"
)

// AssetRecord is one rewritten asset reference.
type AssetRecord struct {
	Original  string `json:"original"`
	Converted string `json:"converted"`
	Type      string `json:"type"`
}

// RegionRecord is a layout region worth extracting into a block or
// template part.
type RegionRecord struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// LoopRecord is one loop the converter emitted. Twig loops carry the
// variable names; WordPress loops carry the construct used.
type LoopRecord struct {
	Element  string `json:"element"`
	ItemsVar string `json:"items_var,omitempty"`
	ItemVar  string `json:"item_var,omitempty"`
	LoopType string `json:"loop_type,omitempty"`
}

type Report struct {
	Dialect Dialect `json:"dialect"`
	Input   string  `json:"input,omitempty"`
	Output  string  `json:"output,omitempty"`
	Layout  string  `json:"layout,omitempty"`
	Theme   string  `json:"theme,omitempty"`

	Assets      []AssetRecord  `json:"assets"`
	Regions     []RegionRecord `json:"regions"`
	Loops       []LoopRecord   `json:"loops"`
	Suggestions []string       `json:"suggestions"`
	Warnings    []string       `json:"warnings"`
}

func New(d Dialect) *Report {
	return &Report{
		Dialect:     d,
		Assets:      []AssetRecord{},
		Regions:     []RegionRecord{},
		Loops:       []LoopRecord{},
		Suggestions: []string{},
		Warnings:    []string{},
	}
}

func (r *Report) AddAsset(original, converted, kind string) {
	r.Assets = append(r.Assets, AssetRecord{Original: original, Converted: converted, Type: kind})
}

func (r *Report) AddRegion(name, reason string) {
	r.Regions = append(r.Regions, RegionRecord{Name: name, Reason: reason})
}

func (r *Report) AddLoop(l LoopRecord) {
	r.Loops = append(r.Loops, l)
}

func (r *Report) AddSuggestion(s string) {
	r.Suggestions = append(r.Suggestions, s)
}

func (r *Report) AddWarning(w string) {
	r.Warnings = append(r.Warnings, w)
}

// Summary is a count of each log, for metrics and CLI output.
type Summary struct {
	Assets      int `json:"assets"`
	Regions     int `json:"regions"`
	Loops       int `json:"loops"`
	Suggestions int `json:"suggestions"`
	Warnings    int `json:"warnings"`
}

func (r *Report) Summary() Summary {
	return Summary{
		Assets:      len(r.Assets),
		Regions:     len(r.Regions),
		Loops:       len(r.Loops),
		Suggestions: len(r.Suggestions),
		Warnings:    len(r.Warnings),
	}
}
