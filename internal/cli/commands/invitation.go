package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nonibytes/mangiato/internal/cliutil"
	"github.com/nonibytes/mangiato/mangiato"
)

func NewInvitationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invitation",
		Aliases: []string{"invite"},
		Short:   "Invite people by email",
	}
	cmd.AddCommand(
		newInvitationCreateCmd(),
		newInvitationGetCmd(),
		newInvitationListCmd(),
		newInvitationDeleteCmd(),
		newInvitationAcceptCmd(),
	)
	return cmd
}

func printInvitation(p *cliutil.Printer, inv mangiato.Invitation, withToken bool) error {
	if p.IsJSON() {
		return p.JSON(newInvitationView(inv, withToken))
	}
	pairs := [][2]string{
		{"ID", strconv.FormatInt(inv.ID, 10)},
		{"Email", inv.Email},
		{"Status", inv.Status},
		{"Created", cliutil.FormatTime(&inv.CreatedAt)},
	}
	if withToken {
		pairs = append(pairs, [2]string{"Token", inv.Token})
	}
	p.KV(pairs)
	return nil
}

func newInvitationCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <email>",
		Short: "Create a pending invitation and print its token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st *mangiato.Store) error {
				inv, err := st.CreateInvitation(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printInvitation(printerFor(cmd), inv, true)
			})
		},
	}
}

func newInvitationGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "invitation")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				inv, err := st.GetInvitation(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printInvitation(printerFor(cmd), inv, false)
			})
		},
	}
}

func newInvitationListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invitations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st *mangiato.Store) error {
				page, err := st.ListInvitations(cmd.Context(), listOptions(cmd))
				if err != nil {
					return err
				}
				p := printerFor(cmd)
				if p.IsJSON() {
					return p.JSON(newPageView(page, func(inv mangiato.Invitation) invitationView {
						return newInvitationView(inv, false)
					}))
				}
				rows := make([][]string, 0, len(page.Items))
				for _, inv := range page.Items {
					rows = append(rows, []string{strconv.FormatInt(inv.ID, 10), inv.Email, inv.Status})
				}
				p.Table([]string{"ID", "EMAIL", "STATUS"}, rows)
				pageLine(p, page.PageInfo)
				return nil
			})
		},
	}
	addListFlags(cmd)
	return cmd
}

func newInvitationDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "invitation")
			if err != nil {
				return err
			}
			return withStore(cmd, func(st *mangiato.Store) error {
				if err := st.DeleteInvitation(cmd.Context(), id); err != nil {
					return err
				}
				printerFor(cmd).Line("Deleted invitation %d", id)
				return nil
			})
		},
	}
}

func newInvitationAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <id> <token>",
		Short: "Accept an invitation and register the invited user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cliutil.ParseID(args[0], "invitation")
			if err != nil {
				return err
			}
			first, _ := cmd.Flags().GetString("first-name")
			last, _ := cmd.Flags().GetString("last-name")
			return withStore(cmd, func(st *mangiato.Store) error {
				u, err := st.AcceptInvitation(cmd.Context(), id, args[1], first, last)
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
