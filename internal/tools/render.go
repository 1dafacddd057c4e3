package tools

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-graphviz"

	"tactscan/internal/errors"
)

// graphFormats are the formats of tools printing graphs.
var graphFormats = []string{"text", "dot", "svg", "png"}

// render converts a DOT graph to format. PNG images are written to path,
// which is then the text of the output.
func render(dot, format, path string) (string, error) {
	switch format {
	case "dot":
		return dot, nil
	case "png":
		if path == "" {
			return "", errors.Executionf(errors.ErrorInvalidConfig, "png output needs the output option")
		}
	}

	g := graphviz.New()
	defer g.Close()
	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return "", errors.Internalf("generated DOT does not parse: %w", err)
	}
	defer graph.Close()

	if format == "png" {
		if err := g.RenderFilename(graph, graphviz.PNG, path); err != nil {
			return "", fmt.Errorf("rendering %s: %w", path, err)
		}
		log.Infof("wrote %s", path)
		return path + "\n", nil
	}

	var buf bytes.Buffer
	if err := g.Render(graph, graphviz.SVG, &buf); err != nil {
		return "", fmt.Errorf("rendering svg: %w", err)
	}
	return buf.String(), nil
}
