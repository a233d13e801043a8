package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nonibytes/mangiato/internal/cliutil"
	"github.com/nonibytes/mangiato/mangiato"
)

func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(
		newUserAddCmd(),
		newUserGetCmd(),
		newUserListCmd(),
		newUserUpdateCmd(),
		newUserDeleteCmd(),
		newUserConfirmCmd(),
		newUserBlockCmd(true),
		newUserBlockCmd(false),
		newUserFailedLoginCmd(),
	)
	return cmd
}

func printUser(p *cliutil.Printer, u mangiato.User) error {
	if p.IsJSON() {
		return p.JSON(newUserView(u))
	}
	p.KV([][2]string{
		{"ID", strconv.FormatInt(u.ID, 10)},
		{"Username", u.Username},
		{"First name", u.FirstName},
		{"Last name", u.LastName},
		{"Confirmed", cliutil.FormatBool(u.Confirmed)},
		{"Confirmed on", cliutil.FormatTime(u.ConfirmedOn)},
		{"Failed logins", strconv.FormatInt(u.AttemptsLogin, 10)},
		{"Blocked", cliutil.FormatBool(u.Blocked)},
		{"Created", cliutil.FormatTime(&u.CreatedAt)},
	})
	return nil
}

func newUserAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, _ := cmd.Flags().GetString("first-name")
			last, _ := cmd.Flags().GetString("last-name")
			return withStore(cmd, func(st *mangiato.Store) error {
				u, err := st.CreateUser(cmd.Context(), mangiato.UserInput{Username: args[0], FirstName: first, LastName: last})
				if err != nil {
					return err
				}
				return printUser(printerFor(cmd), u)
			})
		},
	}
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	return cmd
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				u, err := st.GetUser(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printUser(printerFor(cmd), u)
			})
		},
	}
}

func newUserListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st *mangiato.Store) error {
				page, err := st.ListUsers(cmd.Context(), listOptions(cmd))
				if err != nil {
					return err
				}
				p := printerFor(cmd)
				if p.IsJSON() {
					return p.JSON(newPageView(page, newUserView))
				}
				rows := make([][]string, 0, len(page.Items))
				for _, u := range page.Items {
					rows = append(rows, []string{
						strconv.FormatInt(u.ID, 10), u.Username, u.FirstName, u.LastName,
						cliutil.FormatBool(u.Confirmed), cliutil.FormatBool(u.Blocked),
					})
				}
				p.Table([]string{"ID", "USERNAME", "FIRST", "LAST", "CONFIRMED", "BLOCKED"}, rows)
				pageLine(p, page.PageInfo)
				return nil
			})
		},
	}
	addListFlags(cmd)
	return cmd
}

func newUserUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a user's names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			first, _ := cmd.Flags().GetString("first-name")
			last, _ := cmd.Flags().GetString("last-name")
			return withStore(cmd, func(st *mangiato.Store) error {
				u, err := st.UpdateUser(cmd.Context(), id, first, last)
				if err != nil {
					return err
				}
				return printUser(printerFor(cmd), u)
			})
		},
	}
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user with their profile and meals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				if err := st.DeleteUser(cmd.Context(), id); err != nil {
					return err
				}
				printerFor(cmd).Line("Deleted user %d", id)
				return nil
			})
		},
	}
}

func newUserConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <id>",
		Short: "Mark a user's email as confirmed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				u, err := st.ConfirmUser(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printUser(printerFor(cmd), u)
			})
		},
	}
}

func newUserBlockCmd(block bool) *cobra.Command {
	use, short := "block <id>", "Block a user"
	if !block {
		use, short = "unblock <id>", "Unblock a user and reset failed logins"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				u, err := st.SetBlocked(cmd.Context(), id, block)
				if err != nil {
					return err
				}
				return printUser(printerFor(cmd), u)
			})
		},
	}
}

func newUserFailedLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "failed-login <id>",
		Short: "Record a failed login; the user is blocked at the limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "user")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				u, err := st.RecordFailedLogin(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printUser(printerFor(cmd), u)
			})
		},
	}
}
