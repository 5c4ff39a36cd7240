package pipeline

import (
	"testing"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/render"
)

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"graph", false},
		{"tree", false},
		{"dendrogram", false},
		{"force", false},
		{"spring", true},
		{"FORCE", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
	}
}

func TestValidateOrientation(t *testing.T) {
	tests := []struct {
		orientation string
		wantErr     bool
	}{
		{"", false}, // engine default
		{"horizontal", false},
		{"vertical", false},
		{"radial", false},
		{"diagonal", true},
	}

	for _, tt := range tests {
		err := ValidateOrientation(tt.orientation)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOrientation(%q) error = %v, wantErr %v", tt.orientation, err, tt.wantErr)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	// No dataset source
	opts := Options{}
	if err := opts.ValidateForParse(); err == nil {
		t.Error("Missing dataset source should fail")
	}

	// Inline dataset
	opts = Options{Dataset: &graph.Dataset{}}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Inline dataset should pass: %v", err)
	}

	// Path with control characters
	opts = Options{DatasetPath: "bad\x00path.json"}
	if err := opts.ValidateForParse(); err == nil {
		t.Error("Path with null byte should fail")
	}

	// Hash source
	opts = Options{DatasetHash: "abc123"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Hash source should pass: %v", err)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Engine != DefaultEngine {
		t.Errorf("Engine should be %s, got %s", DefaultEngine, opts.Engine)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations should be %d, got %d", DefaultIterations, opts.Iterations)
	}
	if opts.Orientation != "" {
		t.Errorf("Force engine should not get an orientation, got %s", opts.Orientation)
	}
}

func TestSetLayoutDefaultsTreeOrientation(t *testing.T) {
	opts := Options{Engine: graph.EngineTree}
	opts.SetLayoutDefaults()

	if opts.Orientation != graph.OrientationHorizontal {
		t.Errorf("Tree engine should default to horizontal, got %s", opts.Orientation)
	}

	opts = Options{Engine: graph.EngineDendrogram, Orientation: graph.OrientationRadial}
	opts.SetLayoutDefaults()
	if opts.Orientation != graph.OrientationRadial {
		t.Error("Explicit orientation should survive defaulting")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats should be [%s], got %v", DefaultFormat, opts.Formats)
	}
	if opts.Scale != render.DefaultScale {
		t.Errorf("Scale should be %v, got %v", render.DefaultScale, opts.Scale)
	}
	if opts.PixelRatio != render.DefaultPixelRatio {
		t.Errorf("PixelRatio should be %v, got %v", render.DefaultPixelRatio, opts.PixelRatio)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Dataset: &graph.Dataset{}}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalEngine := opts.Engine
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Engine != originalEngine {
		t.Error("Engine changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	opts := Options{Engine: "tree", Orientation: "radial", Iterations: 100}
	key := opts.LayoutKeyOpts()

	if key.Root != -1 {
		t.Errorf("Unpinned root should key as -1, got %d", key.Root)
	}

	root := 3
	opts.Root = &root
	if got := opts.LayoutKeyOpts().Root; got != 3 {
		t.Errorf("Pinned root should key as 3, got %d", got)
	}
}
