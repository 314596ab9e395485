package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/pipeline"
	"github.com/plantforge/plantforge/pkg/scene"
)

// layoutCommand creates the layout command for computing plant scenes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		params      paramsFlags
		output      string
		format      string
		stylePolicy string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a plant layout from design parameters",
		Long: `Compute a plant layout from design parameters.

Parameters come from flags or a parameter file (--params plant.yaml); flags
given explicitly override the file. The scene is written as JSON (default)
or MessagePack to the --output file, or to stdout when no file is given.

Layouts are cheap and never cached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := params.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd, raw, stylePolicy, output, format)
		},
	}

	params.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "", "scene encoding: json (default), msgpack; inferred from --output")
	cmd.Flags().StringVar(&stylePolicy, "style-policy", "", "unknown style handling: default, reject (default: from config)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{pipeline.FormatJSON, pipeline.FormatMsgpack}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, raw plant.RawParams, stylePolicy, output, format string) error {
	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx))

	opts := c.Config.PipelineOptions(raw)
	if stylePolicy != "" {
		opts.StylePolicy = stylePolicy
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	sc, err := runner.Layout(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Computed %s layout", sc.Params.LayoutType))

	if format == "" {
		format = sceneFormatFor(output)
	}
	data, err := encodeScene(sc, format)
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(sc.Stats, false)
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render --scene %s", appName, output))
	return nil
}

// sceneFormatFor infers the scene encoding from an output path.
func sceneFormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".msgpack") {
		return pipeline.FormatMsgpack
	}
	return pipeline.FormatJSON
}

func encodeScene(sc scene.Scene, format string) ([]byte, error) {
	switch format {
	case pipeline.FormatJSON:
		return scene.MarshalScene(sc)
	case pipeline.FormatMsgpack:
		return scene.MarshalMsgpack(sc)
	}
	return nil, fmt.Errorf("invalid scene format: %s (must be 'json' or 'msgpack')", format)
}

// readScene loads a scene file, choosing the decoder by extension.
func readScene(path string) (scene.Scene, error) {
	if sceneFormatFor(path) == pipeline.FormatMsgpack {
		data, err := os.ReadFile(path)
		if err != nil {
			return scene.Scene{}, fmt.Errorf("read %s: %w", path, err)
		}
		return scene.UnmarshalMsgpack(data)
	}
	return scene.ReadSceneFile(path)
}
