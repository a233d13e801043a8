package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nonibytes/mangiato/internal/cliutil"
	"github.com/nonibytes/mangiato/mangiato"
)

func NewMealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log and query a user's meals",
	}
	cmd.AddCommand(
		newMealAddCmd(),
		newMealGetCmd(),
		newMealListCmd(),
		newMealUpdateCmd(),
		newMealPatchCmd(),
		newMealDeleteCmd(),
	)
	return cmd
}

func addMealFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "date as YYYY-MM-DD")
	cmd.Flags().String("time", "", "time as HH:MM:SS")
	cmd.Flags().String("description", "", "what was eaten")
	cmd.Flags().Float64("calories", 0, "calories; estimated from the description when omitted")
}

// mealInput reads every meal flag. Calories stay nil unless --calories was
// given.
func mealInput(cmd *cobra.Command) mangiato.MealInput {
	var in mangiato.MealInput
	in.Date, _ = cmd.Flags().GetString("date")
	in.Time, _ = cmd.Flags().GetString("time")
	in.Description, _ = cmd.Flags().GetString("description")
	if cmd.Flags().Changed("calories") {
		v, _ := cmd.Flags().GetFloat64("calories")
		in.Calories = &v
	}
	return in
}

func mealPatch(cmd *cobra.Command) mangiato.MealPatch {
	var p mangiato.MealPatch
	str := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	p.Date = str("date")
	p.Time = str("time")
	p.Description = str("description")
	if cmd.Flags().Changed("calories") {
		v, _ := cmd.Flags().GetFloat64("calories")
		p.Calories = &v
	}
	return p
}

func userAndMealIDs(args []string) (int64, int64, error) {
	userID, err := cliutil.ParseID(args[0], "user")
	if err != nil {
		return 0, 0, err
	}
	mealID, err := cliutil.ParseID(args[1], "meal")
	if err != nil {
		return 0, 0, err
	}
	return userID, mealID, nil
}

func printMeal(p *cliutil.Printer, m mangiato.Meal) error {
	if p.IsJSON() {
		return p.JSON(newMealView(m))
	}
	p.KV([][2]string{
		{"ID", strconv.FormatInt(m.ID, 10)},
		{"User", strconv.FormatInt(m.UserID, 10)},
		{"Date", m.Date},
		{"Time", m.Time},
		{"Description", m.Description},
		{"Calories", cliutil.FormatCalories(m.Calories)},
		{"Within budget", cliutil.FormatBool(m.WithinBudget)},
	})
	return nil
}

func newMealAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Log a meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				m, err := st.CreateMeal(cmd.Context(), userID, mealInput(cmd))
				if err != nil {
					return err
				}
				return printMeal(printerFor(cmd), m)
			})
		},
	}
	addMealFlags(cmd)
	return cmd
}

func newMealGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id> <meal-id>",
		Short: "Show a meal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, mealID, err := userAndMealIDs(args)
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				m, err := st.GetMeal(cmd.Context(), userID, mealID)
				if err != nil {
					return err
				}
				return printMeal(printerFor(cmd), m)
			})
		},
	}
}

func newMealListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's meals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				page, err := st.ListMeals(cmd.Context(), userID, listOptions(cmd))
				if err != nil {
					return err
				}
				p := printerFor(cmd)
				if p.IsJSON() {
					return p.JSON(newPageView(page, newMealView))
				}
				rows := make([][]string, 0, len(page.Items))
				for _, m := range page.Items {
					rows = append(rows, []string{
						strconv.FormatInt(m.ID, 10), m.Date, m.Time, m.Description,
						cliutil.FormatCalories(m.Calories), cliutil.FormatBool(m.WithinBudget),
					})
				}
				p.Table([]string{"ID", "DATE", "TIME", "DESCRIPTION", "CALORIES", "WITHIN BUDGET"}, rows)
				pageLine(p, page.PageInfo)
				return nil
			})
		},
	}
	addListFlags(cmd)
	return cmd
}

func newMealUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <user-id> <meal-id>",
		Short: "Replace every field of a meal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, mealID, err := userAndMealIDs(args)
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				m, err := st.UpdateMeal(cmd.Context(), userID, mealID, mealInput(cmd))
				if err != nil {
					return err
				}
				return printMeal(printerFor(cmd), m)
			})
		},
	}
	addMealFlags(cmd)
	return cmd
}

func newMealPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <user-id> <meal-id>",
		Short: "Change only the given fields of a meal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, mealID, err := userAndMealIDs(args)
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				m, err := st.PatchMeal(cmd.Context(), userID, mealID, mealPatch(cmd))
				if err != nil {
					return err
				}
				return printMeal(printerFor(cmd), m)
			})
		},
	}
	addMealFlags(cmd)
	return cmd
}

func newMealDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id> <meal-id>",
		Short: "Delete a meal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, mealID, err := userAndMealIDs(args)
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				if err := st.DeleteMeal(cmd.Context(), userID, mealID); err != nil {
					return err
				}
				printerFor(cmd).Line("Deleted meal %d", mealID)
				return nil
			})
		},
	}
}
