// Package main generates architecture diagrams for the labels2veracode
// project using the go-diagrams library. Rendered Graphviz sources are
// written beneath docs/diagrams/.
package main

import (
	"log"
	"os"

	"github.com/blushft/go-diagrams/diagram"
	"github.com/blushft/go-diagrams/nodes/apps"
	"github.com/blushft/go-diagrams/nodes/generic"
	"github.com/blushft/go-diagrams/nodes/programming"
)

func main() {
	if err := os.MkdirAll("docs/diagrams", 0o750); err != nil {
		log.Fatal(err)
	}
	if err := os.Chdir("docs/diagrams"); err != nil {
		log.Fatal(err)
	}

	architecture, err := buildArchitectureDiagram()
	if err != nil {
		log.Fatal(err)
	}
	if err := architecture.Render(); err != nil {
		log.Fatal(err)
	}

	components, err := buildComponentDiagram()
	if err != nil {
		log.Fatal(err)
	}
	if err := components.Render(); err != nil {
		log.Fatal(err)
	}
}

// buildArchitectureDiagram describes the high-level flow from the label
// file through the CLI to the Veracode labels API.
func buildArchitectureDiagram() (*diagram.Diagram, error) {
	d, err := diagram.New(diagram.Filename("architecture"), diagram.Label("labels2veracode"), diagram.Direction("LR"))
	if err != nil {
		return nil, err
	}

	labelFile := generic.Storage.Storage(diagram.NodeLabel("labels.txt"))
	cli := programming.Language.Go(diagram.NodeLabel("labels2veracode CLI"))
	veracode := apps.Network.Internet(diagram.NodeLabel("Veracode Labels API"))

	d.Connect(labelFile, cli, diagram.Forward())
	d.Connect(cli, veracode, diagram.Forward())

	return d, nil
}

// buildComponentDiagram describes the internal package structure of the
// CLI and how the packages depend on each other.
func buildComponentDiagram() (*diagram.Diagram, error) {
	d, err := diagram.New(diagram.Filename("components"), diagram.Label("labels2veracode components"), diagram.Direction("LR"))
	if err != nil {
		return nil, err
	}

	root := programming.Language.Go(diagram.NodeLabel("cmd/labels2veracode"))
	conf := programming.Language.Go(diagram.NodeLabel("pkg/config"))
	imp := programming.Language.Go(diagram.NodeLabel("internal/importer"))
	reader := programming.Language.Go(diagram.NodeLabel("internal/labelfile"))
	client := programming.Language.Go(diagram.NodeLabel("internal/api"))

	d.Connect(root, conf, diagram.Forward())
	d.Connect(root, imp, diagram.Forward())
	d.Connect(imp, reader, diagram.Forward())
	d.Connect(imp, client, diagram.Forward())

	return d, nil
}
