package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plantforge/plantforge/pkg/design"
	"github.com/plantforge/plantforge/pkg/errors"
)

// adminCommand creates the admin command. Every subcommand except seed
// requires the configured owner to be an admin.
func (c *CLI) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer users and designs",
	}

	cmd.AddCommand(c.adminSeedCommand())
	cmd.AddCommand(c.adminUsersCommand())
	cmd.AddCommand(c.adminDesignsCommand())
	cmd.AddCommand(c.adminAnalyticsCommand())
	cmd.AddCommand(c.adminDeleteUserCommand())
	cmd.AddCommand(c.adminDeleteDesignCommand())

	return cmd
}

// withAdmin opens the store and checks the configured owner is an admin.
func (c *CLI) withAdmin(cmd *cobra.Command, fn func(*design.Service) error) error {
	return c.withService(cmd, func(svc *design.Service) error {
		if _, err := svc.RequireAdmin(cmd.Context(), c.Config.OwnerID); err != nil {
			return err
		}
		return fn(svc)
	})
}

func (c *CLI) adminSeedCommand() *cobra.Command {
	var in design.UserInput
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create an admin user, or promote an existing one by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(svc *design.Service) error {
				u, created, err := svc.SeedAdmin(cmd.Context(), in)
				if err != nil {
					return err
				}
				if created {
					printSuccess("Created admin %s", StyleHighlight.Render(u.ID))
				} else {
					printSuccess("%s is an admin", StyleHighlight.Render(u.ID))
				}
				printKeyValue("Email", u.Email)
				printNextStep("Act as this admin", fmt.Sprintf("PLANTFORGE_OWNER_ID=%s %s admin analytics", u.ID, appName))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "Administrator", "display name for a new admin")
	cmd.Flags().StringVar(&in.Email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&in.CompanyName, "company", "", "company name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *CLI) adminUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAdmin(cmd, func(svc *design.Service) error {
				users, err := svc.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), usersTable(users))
				return nil
			})
		},
	}
}

func (c *CLI) adminDesignsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "designs",
		Short: "List every owner's designs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAdmin(cmd, func(svc *design.Service) error {
				designs, err := svc.ListAllDesigns(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), designsTable(designs, true))
				return nil
			})
		},
	}
}

func (c *CLI) adminAnalyticsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show user and design counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAdmin(cmd, func(svc *design.Service) error {
				a, err := svc.Analytics(cmd.Context())
				if err != nil {
					return err
				}
				printKeyValue("Users", fmt.Sprintf("%d", a.UserCount))
				printKeyValue("Designs", fmt.Sprintf("%d", a.DesignCount))
				layouts := make([]string, 0, len(a.DesignsByLayout))
				for k := range a.DesignsByLayout {
					layouts = append(layouts, k)
				}
				sort.Strings(layouts)
				printKeyValue("By layout", countsLine(a.DesignsByLayout, layouts))
				if len(a.RecentDesigns) > 0 {
					printNewline()
					fmt.Fprintln(cmd.OutOrStdout(), designsTable(a.RecentDesigns, true))
				}
				return nil
			})
		},
	}
}

func (c *CLI) adminDeleteUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <id>",
		Short: "Delete a user and all of their designs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAdmin(cmd, func(svc *design.Service) error {
				n, err := svc.DeleteUser(cmd.Context(), c.Config.OwnerID, args[0])
				if err != nil {
					return err
				}
				printSuccess("Deleted user %s and %d design(s)", args[0], n)
				return nil
			})
		},
	}
}

func (c *CLI) adminDeleteDesignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-design <id>",
		Short: "Delete any user's design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAdmin(cmd, func(svc *design.Service) error {
				if err := svc.DeleteAnyDesign(cmd.Context(), args[0]); err != nil {
					if errors.IsNotFound(err) {
						printWarning("No design %s", args[0])
					}
					return err
				}
				printSuccess("Deleted design %s", args[0])
				return nil
			})
		},
	}
}
