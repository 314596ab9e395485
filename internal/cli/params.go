package cli

import (
	"github.com/spf13/cobra"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/design"
	"github.com/plantforge/plantforge/pkg/scene"
)

// paramsFlags binds the design parameter flags shared by layout, render
// and design. Explicit flags win over values read from --params.
type paramsFlags struct {
	file     string
	flow     float64
	tanks    float64
	diameter float64
	style    string
}

func (p *paramsFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.file, "params", "p", "", "parameter file (.json, .yaml or .toml)")
	cmd.Flags().Float64Var(&p.flow, "flow-rate", design.DefaultFlowRate, "flow rate")
	cmd.Flags().Float64Var(&p.tanks, "tanks", design.DefaultNumberOfTanks, "number of tanks (clamped to 1-20)")
	cmd.Flags().Float64Var(&p.diameter, "pipe-diameter", design.DefaultPipeDiameter, "pipe diameter")
	cmd.Flags().StringVar(&p.style, "style", string(plant.DefaultStyle), "layout style: compact, industrial")
	_ = cmd.RegisterFlagCompletionFunc("style", completeStyles)
}

// resolve returns the parameters described by the flags.
func (p *paramsFlags) resolve(cmd *cobra.Command) (plant.RawParams, error) {
	raw := plant.RawParams{
		FlowRate:      p.flow,
		NumberOfTanks: p.tanks,
		PipeDiameter:  p.diameter,
		LayoutType:    p.style,
	}
	if p.file == "" {
		return raw, nil
	}

	fromFile, err := scene.ReadParamsFile(p.file)
	if err != nil {
		return plant.RawParams{}, err
	}
	if !cmd.Flags().Changed("flow-rate") {
		raw.FlowRate = fromFile.FlowRate
	}
	if !cmd.Flags().Changed("tanks") {
		raw.NumberOfTanks = fromFile.NumberOfTanks
	}
	if !cmd.Flags().Changed("pipe-diameter") {
		raw.PipeDiameter = fromFile.PipeDiameter
	}
	if !cmd.Flags().Changed("style") {
		raw.LayoutType = fromFile.LayoutType
	}
	return raw, nil
}
