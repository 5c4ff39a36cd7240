package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Dataset - Input Serialization
// =============================================================================

// Dataset is the JSON input format for graph data.
//
// Node records live under "nodes"; the legacy "data" key is accepted as an
// alias when "nodes" is absent. Edges address records by position:
//
//	{
//	  "nodes": [{"label": "root"}, {"label": "leaf", "x": 1, "y": -1}],
//	  "edges": [{"source": 0, "target": 1}]
//	}
type Dataset struct {
	Nodes []Record `json:"nodes" bson:"nodes"`
	Edges []Edge   `json:"edges" bson:"edges"`
}

// UnmarshalJSON accepts "data" as an alias for "nodes".
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nodes []Record `json:"nodes"`
		Data  []Record `json:"data"`
		Edges []Edge   `json:"edges"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Nodes = raw.Nodes
	if d.Nodes == nil {
		d.Nodes = raw.Data
	}
	d.Edges = raw.Edges
	return nil
}

// Parse converts the dataset into a Graph. See [Parse].
func (d Dataset) Parse() (*Graph, error) {
	return Parse(d.Nodes, d.Edges)
}

// =============================================================================
// Dataset Serialization API
// =============================================================================

// MarshalDataset serializes a Dataset to pretty-printed JSON bytes.
func MarshalDataset(d Dataset) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDataset deserializes JSON bytes into a Dataset.
func UnmarshalDataset(data []byte) (Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return Dataset{}, fmt.Errorf("unmarshal dataset: %w", err)
	}
	return d, nil
}

// ReadDataset decodes a JSON dataset from an io.Reader.
// Use ReadDatasetFile for files or pass bytes.NewReader for in-memory data.
func ReadDataset(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dataset{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// ReadDatasetFile reads a JSON dataset file.
func ReadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}

// WriteDataset writes a Dataset as indented JSON to an io.Writer.
func WriteDataset(d Dataset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDatasetFile writes a Dataset to a JSON file.
// The file is created with 0644 permissions.
func WriteDatasetFile(d Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDataset(d, f)
}
