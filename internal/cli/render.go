package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plantforge/plantforge/pkg/pipeline"
	"github.com/plantforge/plantforge/pkg/scene"
)

// renderOpts holds the render command's flags.
type renderOpts struct {
	params    paramsFlags
	sceneFile string
	output    string
	formats   string
	scale     float64
	labels    bool
	detailed  bool
	noCache   bool
}

// renderCommand creates the render command for producing drawings.
func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a plant layout to SVG, PNG, PDF or Graphviz",
		Long: `Render a plant layout.

The layout is computed from parameter flags or a parameter file, or loaded
from a scene written by 'plantforge layout' (--scene). One file is written
per requested format next to the --output base path:

  svg        top-down plan view
  png, pdf   rasterized plan view
  dot        process schematic in Graphviz DOT
  schematic  process schematic laid out by Graphviz
  json       the scene itself
  msgpack    the scene as MessagePack

Artifacts are cached by scene content; rerendering an unchanged plant is
served from the cache.`,
		Example: `  plantforge render --tanks 6 --style industrial -f svg,png
  plantforge render --scene plant.json -f schematic -o out/plant`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	opts.params.bind(cmd)
	cmd.Flags().StringVar(&opts.sceneFile, "scene", "", "render a scene file instead of computing one")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: plant or the scene file name)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "comma-separated formats: json, msgpack, svg, dot, schematic, png, pdf")
	_ = cmd.RegisterFlagCompletionFunc("format", completeList(pipeline.Formats...))
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "pixels per world unit in the plan view")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label tanks in the plan view")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include dimensions in schematic nodes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	sc, err := c.renderScene(cmd, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Formats:  formats,
		Scale:    opts.scale,
		Labels:   opts.labels,
		Detailed: opts.detailed,
	}

	artifacts, cached, err := c.renderWithSpinner(ctx, runner, sc, popts)
	if err != nil {
		return err
	}

	base := basePath(opts.output, opts.sceneFile)
	paths := make([]string, 0, len(artifacts))
	for format, data := range artifacts {
		path := artifactPath(base, format)
		if err := writeOutput(path, data); err != nil {
			return err
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	printSuccess("Rendered %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	printStats(sc.Stats, cached)
	return nil
}

// renderScene loads --scene or computes a layout from the parameter flags.
func (c *CLI) renderScene(cmd *cobra.Command, opts *renderOpts) (scene.Scene, error) {
	if opts.sceneFile != "" {
		return readScene(opts.sceneFile)
	}
	raw, err := opts.params.resolve(cmd)
	if err != nil {
		return scene.Scene{}, err
	}
	return pipeline.NewRunner(nil, nil, c.Logger).Layout(cmd.Context(), c.Config.PipelineOptions(raw))
}

func (c *CLI) renderWithSpinner(ctx context.Context, runner *pipeline.Runner, sc scene.Scene, opts pipeline.Options) (map[string][]byte, bool, error) {
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %d tank(s)...", len(sc.Tanks)))
	spinner.Start()
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, sc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, false, err
	}
	spinner.Stop()
	return artifacts, cached, nil
}
