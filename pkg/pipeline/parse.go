package pipeline

import (
	apperrors "github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/graph"
)

// loadDataset reads the dataset document from the options. Inline
// datasets win over paths; cache-hash sources are resolved by the
// runner, not here.
func loadDataset(opts Options) (graph.Dataset, error) {
	if opts.Dataset != nil {
		return *opts.Dataset, nil
	}
	d, err := graph.ReadDatasetFile(opts.DatasetPath)
	if err != nil {
		return graph.Dataset{}, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err,
			"read dataset %s", opts.DatasetPath)
	}
	return d, nil
}

// buildGraph parses a dataset document into the positional-index graph.
func buildGraph(d graph.Dataset) (*graph.Graph, error) {
	g, err := d.Parse()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "parse dataset")
	}
	return g, nil
}

// sourceName names the dataset source for logs and instrumentation.
func sourceName(opts Options) string {
	switch {
	case opts.DatasetPath != "":
		return opts.DatasetPath
	case opts.Dataset != nil:
		return "inline"
	default:
		return opts.DatasetHash
	}
}
