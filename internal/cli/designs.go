package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/plantforge/plantforge/pkg/design"
	"github.com/plantforge/plantforge/pkg/errors"
)

// designsCommand creates the designs command for managing saved designs.
// All subcommands act as the configured owner (owner_id).
func (c *CLI) designsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "designs",
		Aliases: []string{"ds"},
		Short:   "Manage saved designs",
	}

	cmd.AddCommand(c.designsListCommand())
	cmd.AddCommand(c.designsShowCommand())
	cmd.AddCommand(c.designsSaveCommand())
	cmd.AddCommand(c.designsUpdateCommand())
	cmd.AddCommand(c.designsDeleteCommand())
	cmd.AddCommand(c.designsLayoutCommand())

	return cmd
}

// withService opens the design store for the duration of fn.
func (c *CLI) withService(cmd *cobra.Command, fn func(*design.Service) error) error {
	svc, closeFn, err := c.newService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(svc)
}

func (c *CLI) designsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your designs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(svc *design.Service) error {
				designs, err := svc.ListDesigns(cmd.Context(), c.Config.OwnerID)
				if err != nil {
					return err
				}
				if len(designs) == 0 {
					printInfo("No designs yet")
					printNextStep("Create one", appName+" designs save --name \"Plant A\"")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), designsTable(designs, false))
				return nil
			})
		},
	}
}

func (c *CLI) designsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a design as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(svc *design.Service) error {
				d, err := svc.GetDesign(cmd.Context(), c.Config.OwnerID, args[0])
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(d)
			})
		},
	}
}

// designFlags binds the flags that build a DesignInput. Only flags the user
// set end up in the input, so updates leave other fields untouched.
type designFlags struct {
	from     string
	name     string
	flow     float64
	tanks    float64
	diameter float64
	style    string
}

func (f *designFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "read the design from a YAML or JSON file")
	cmd.Flags().StringVar(&f.name, "name", "", "design name")
	cmd.Flags().Float64Var(&f.flow, "flow-rate", 0, "flow rate")
	cmd.Flags().Float64Var(&f.tanks, "tanks", 0, "number of tanks")
	cmd.Flags().Float64Var(&f.diameter, "pipe-diameter", 0, "pipe diameter")
	cmd.Flags().StringVar(&f.style, "style", "", "layout style: compact, industrial")
}

func (f *designFlags) input(cmd *cobra.Command) (design.DesignInput, error) {
	var in design.DesignInput
	if f.from != "" {
		data, err := os.ReadFile(f.from)
		if err != nil {
			return in, fmt.Errorf("read %s: %w", f.from, err)
		}
		// YAML is a superset of JSON, so one decoder reads both.
		if err := yaml.Unmarshal(data, &in); err != nil {
			return in, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f.from)
		}
	}

	changed := cmd.Flags().Changed
	if changed("name") {
		in.Name = &f.name
	}
	if changed("flow-rate") {
		in.FlowRate = &f.flow
	}
	if changed("tanks") {
		in.NumberOfTanks = &f.tanks
	}
	if changed("pipe-diameter") {
		in.PipeDiameter = &f.diameter
	}
	if changed("style") {
		in.LayoutType = &f.style
	}
	return in, nil
}

func (c *CLI) designsSaveCommand() *cobra.Command {
	var flags designFlags
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a new design; unset fields take their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return err
			}
			return c.withService(cmd, func(svc *design.Service) error {
				d, err := svc.CreateDesign(cmd.Context(), c.Config.OwnerID, in)
				if err != nil {
					return err
				}
				printSuccess("Saved design %s", StyleHighlight.Render(d.ID))
				printDesign(d)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *CLI) designsUpdateCommand() *cobra.Command {
	var flags designFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a saved design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd)
			if err != nil {
				return err
			}
			if in.IsEmpty() {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to update")
			}
			return c.withService(cmd, func(svc *design.Service) error {
				d, err := svc.UpdateDesign(cmd.Context(), c.Config.OwnerID, args[0], in)
				if err != nil {
					return err
				}
				printSuccess("Updated design %s", StyleHighlight.Render(d.ID))
				printDesign(d)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *CLI) designsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(svc *design.Service) error {
				if err := svc.DeleteDesign(cmd.Context(), c.Config.OwnerID, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted design %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) designsLayoutCommand() *cobra.Command {
	var output, format string
	cmd := &cobra.Command{
		Use:   "layout <id>",
		Short: "Compute the layout of a saved design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(svc *design.Service) error {
				sc, err := svc.Layout(cmd.Context(), c.Config.OwnerID, args[0])
				if err != nil {
					return err
				}
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
				printFile(output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "", "scene encoding: json (default), msgpack")
	return cmd
}

func printDesign(d *design.Design) {
	printKeyValue("Name", d.Name)
	printKeyValue("Flow rate", fmt.Sprintf("%g", d.FlowRate))
	printKeyValue("Tanks", fmt.Sprintf("%d", d.NumberOfTanks))
	printKeyValue("Pipe diameter", fmt.Sprintf("%g", d.PipeDiameter))
	printKeyValue("Layout", d.LayoutType)
}
