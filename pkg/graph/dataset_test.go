package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnmarshalDataset(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantEdges int
		wantErr   bool
		check     func(t *testing.T, d Dataset)
	}{
		{
			name: "NodesKey",
			input: `{
				"nodes": [{"label": "a"}, {"label": "b", "x": 1, "y": 2}],
				"edges": [{"source": 0, "target": 1}]
			}`,
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, d Dataset) {
				if d.Nodes[1].X == nil || *d.Nodes[1].X != 1 {
					t.Errorf("node 1 x = %v, want 1", d.Nodes[1].X)
				}
			},
		},
		{
			name: "DataAlias",
			input: `{
				"data": [{"label": "a"}, {"label": "b"}, {"label": "c"}],
				"edges": []
			}`,
			wantNodes: 3,
			wantEdges: 0,
		},
		{
			name: "NodesWinsOverData",
			input: `{
				"nodes": [{"label": "kept"}],
				"data": [{"label": "x"}, {"label": "y"}]
			}`,
			wantNodes: 1,
			check: func(t *testing.T, d Dataset) {
				if d.Nodes[0].Label != "kept" {
					t.Errorf("label = %q, want kept", d.Nodes[0].Label)
				}
			},
		},
		{
			name:      "Empty",
			input:     `{}`,
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name:    "Invalid",
			input:   `{invalid json}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := UnmarshalDataset([]byte(tt.input))

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalDataset: %v", err)
			}

			if got := len(d.Nodes); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := len(d.Edges); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}

			if tt.check != nil {
				tt.check(t, d)
			}
		})
	}
}

func TestReadDataset(t *testing.T) {
	r := strings.NewReader(`{"nodes": [{"label": "a"}], "edges": []}`)

	d, err := ReadDataset(r)
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if len(d.Nodes) != 1 {
		t.Errorf("nodes = %d, want 1", len(d.Nodes))
	}
}

func TestReadDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	content := `{
		"nodes": [{"label": "a"}, {"label": "b"}],
		"edges": [{"source": 0, "target": 1}]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := ReadDatasetFile(path)
	if err != nil {
		t.Fatalf("ReadDatasetFile: %v", err)
	}

	g, err := d.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", g.NodeCount(), g.EdgeCount())
	}
}

func TestReadDatasetFileNotFound(t *testing.T) {
	_, err := ReadDatasetFile("nonexistent.json")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestWriteDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	d := Dataset{
		Nodes: []Record{{Label: "a"}, {Label: "b"}},
		Edges: []Edge{{Source: 0, Target: 1}},
	}

	if err := WriteDatasetFile(d, path); err != nil {
		t.Fatalf("WriteDatasetFile: %v", err)
	}

	back, err := ReadDatasetFile(path)
	if err != nil {
		t.Fatalf("ReadDatasetFile: %v", err)
	}
	if len(back.Nodes) != 2 || len(back.Edges) != 1 {
		t.Errorf("counts = %d/%d, want 2/1", len(back.Nodes), len(back.Edges))
	}
}
