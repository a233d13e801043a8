package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nonibytes/mangiato/internal/cliopt"
	"github.com/nonibytes/mangiato/internal/seed"
	"github.com/nonibytes/mangiato/mangiato"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store's tables; existing tables are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cliopt.FromFlags(cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			st, err := g.OpenStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer st.Close()
			printerFor(cmd).Line("Initialized %s store at %s", g.Config.Backend, g.Config.DB)
			return nil
		},
	}
}

func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load users, meals and invitations from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			data, err := seed.Parse(f)
			if err != nil {
				return err
			}

			g, err := cliopt.FromFlags(cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			st, err := g.OpenStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer st.Close()

			sum, err := seed.Apply(cmd.Context(), st, data, g.Logger)
			p := printerFor(cmd)
			if p.IsJSON() {
				if jerr := p.JSON(map[string]int{"users": sum.Users, "meals": sum.Meals, "invitations": sum.Invitations}); jerr != nil {
					return jerr
				}
			} else {
				p.Line("Seeded %d users, %d meals, %d invitations", sum.Users, sum.Meals, sum.Invitations)
			}
			return err
		},
	}
}

func NewFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Work with filter expressions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <entity> <expression>",
		Short: "Parse an expression against an entity and print its canonical form",
		Long:  "Entities are meal, user and invitation. Fields and values are case-insensitive.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonical, err := mangiato.CheckFilter(args[0], args[1])
			if err != nil {
				return err
			}
			p := printerFor(cmd)
			if p.IsJSON() {
				return p.JSON(map[string]string{"entity": args[0], "filter": canonical})
			}
			p.Line("%s", canonical)
			return nil
		},
	})
	return cmd
}
