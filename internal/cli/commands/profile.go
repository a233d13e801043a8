package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nonibytes/mangiato/internal/cliutil"
	"github.com/nonibytes/mangiato/mangiato"
)

func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change a user's daily calorie maximum",
	}
	cmd.AddCommand(newProfileGetCmd(), newProfileSetCmd())
	return cmd
}

func printProfile(p *cliutil.Printer, pr mangiato.Profile) error {
	if p.IsJSON() {
		return p.JSON(map[string]any{"user_id": pr.UserID, "maximum_calories": pr.MaximumCalories})
	}
	p.KV([][2]string{
		{"User", strconv.FormatInt(pr.UserID, 10)},
		{"Maximum calories", cliutil.FormatFloat(pr.MaximumCalories)},
	})
	return nil
}

func newProfileGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				pr, err := st.GetProfile(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printProfile(printerFor(cmd), pr)
			})
		},
	}
}

func newProfileSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <user-id> <maximum-calories>",
		Short: "Change the daily maximum and re-flag every meal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			maxCal, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return mangiato.ValidationError("maximum_calories", "must be a number")
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				pr, err := st.UpdateProfile(cmd.Context(), id, maxCal)
				if err != nil {
					return err
				}
				return printProfile(printerFor(cmd), pr)
			})
		},
	}
}
