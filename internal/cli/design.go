package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plantforge/plantforge/pkg/design"
)

// designCommand creates the interactive design editor command.
func (c *CLI) designCommand() *cobra.Command {
	var (
		params paramsFlags
		name   string
	)

	cmd := &cobra.Command{
		Use:   "design [id]",
		Short: "Edit a design interactively with a live plan preview",
		Long: `Edit a design interactively.

Without an id the editor starts from the parameter flags (or the defaults).
With an id it opens that saved design. Saving writes the design to the
store under the configured owner.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeFn, err := c.newService(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			var existing *design.Design
			if len(args) == 1 {
				if existing, err = svc.GetDesign(ctx, c.Config.OwnerID, args[0]); err != nil {
					return err
				}
			}

			model, err := c.newEditor(cmd, &params, name, existing)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			result := final.(EditorModel)
			if !result.Saved {
				printInfo("Discarded changes")
				return nil
			}
			return c.saveEdited(cmd, svc, existing, result)
		},
	}

	params.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "design name (default: "+design.DefaultName+")")

	return cmd
}

func (c *CLI) newEditor(cmd *cobra.Command, params *paramsFlags, name string, existing *design.Design) (EditorModel, error) {
	opts := c.Config.LayoutOptions()
	if existing != nil {
		if name == "" {
			name = existing.Name
		}
		return NewEditorModel(name, existing.Params(), opts...), nil
	}
	raw, err := params.resolve(cmd)
	if err != nil {
		return EditorModel{}, err
	}
	if name == "" {
		name = design.DefaultName
	}
	return NewEditorModel(name, raw, opts...), nil
}

// editorInput converts the editor's final state into a design input.
func editorInput(m EditorModel) design.DesignInput {
	tanks := m.Params.NumberOfTanks
	style := string(m.Layout.Params.Style)
	return design.DesignInput{
		Name:          &m.Name,
		FlowRate:      &m.Params.FlowRate,
		NumberOfTanks: &tanks,
		PipeDiameter:  &m.Params.PipeDiameter,
		LayoutType:    &style,
	}
}

func (c *CLI) saveEdited(cmd *cobra.Command, svc *design.Service, existing *design.Design, m EditorModel) error {
	ctx := cmd.Context()
	in := editorInput(m)

	var (
		d   *design.Design
		err error
	)
	if existing != nil {
		d, err = svc.UpdateDesign(ctx, c.Config.OwnerID, existing.ID, in)
	} else {
		d, err = svc.CreateDesign(ctx, c.Config.OwnerID, in)
	}
	if err != nil {
		return err
	}
	printSuccess("Saved design %s", StyleHighlight.Render(d.ID))
	printKeyValue("Name", d.Name)
	return nil
}
