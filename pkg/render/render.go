package render

import (
	apperrors "github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/graph"
)

// Artifact formats accepted by [Render].
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Formats lists the supported artifact format names.
func Formats() []string {
	return []string{FormatSVG, FormatPNG, FormatDOT, FormatJSON}
}

// ValidFormat reports whether name is a supported artifact format.
func ValidFormat(name string) bool {
	switch name {
	case FormatSVG, FormatPNG, FormatDOT, FormatJSON:
		return true
	}
	return false
}

// Render produces an artifact in the requested format.
//
// JSON output is the layout serialization itself and ignores the
// drawing options. The other formats go through [ToDOT] first.
func Render(l graph.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatDOT, FormatSVG, FormatPNG:
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown artifact format %q", format)
	}

	dot, err := ToDOT(l, opts)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(dot)
	default:
		return RenderPNG(dot, opts.PixelRatio)
	}
}
