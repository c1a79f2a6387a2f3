package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kafune/rede-guti/internal/client"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage operator accounts (admin only)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := api.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOME\tEMAIL\tPERFIL")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(u.ID), u.Name, u.Email, u.Role)
		}
		return w.Flush()
	},
}

var createUserInput client.CreateUserInput

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := api.CreateUser(cmd.Context(), createUserInput)
		if err != nil {
			return err
		}
		fmt.Printf("Usuário criado: %s (%s)\n", user.Email, user.Role)
		return nil
	},
}

var (
	updateEmail    string
	updateName     string
	updatePassword string
	updateRole     string
	updateDevzapp  string
)

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account; only the provided flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input client.UpdateUserInput
		if cmd.Flags().Changed("email") {
			input.Email = &updateEmail
		}
		if cmd.Flags().Changed("name") {
			input.Name = &updateName
		}
		if cmd.Flags().Changed("password") {
			input.Password = &updatePassword
		}
		if cmd.Flags().Changed("role") {
			input.Role = &updateRole
		}
		if cmd.Flags().Changed("devzapp-link") {
			input.DevzappLink = &updateDevzapp
		}

		user, err := api.UpdateUser(cmd.Context(), args[0], input)
		if err != nil {
			return err
		}
		fmt.Printf("Usuário atualizado: %s (%s)\n", user.Email, user.Role)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Usuário removido.")
		return nil
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&createUserInput.Email, "email", "", "email")
	usersCreateCmd.Flags().StringVar(&createUserInput.Name, "name", "", "display name")
	usersCreateCmd.Flags().StringVar(&createUserInput.Password, "password", "", "password")
	usersCreateCmd.Flags().StringVar(&createUserInput.Role, "role", "OPERATOR", "ADMIN, OPERATOR or VIEWER")
	usersCreateCmd.MarkFlagRequired("email")
	usersCreateCmd.MarkFlagRequired("name")
	usersCreateCmd.MarkFlagRequired("password")

	usersUpdateCmd.Flags().StringVar(&updateEmail, "email", "", "new email")
	usersUpdateCmd.Flags().StringVar(&updateName, "name", "", "new display name")
	usersUpdateCmd.Flags().StringVar(&updatePassword, "password", "", "new password")
	usersUpdateCmd.Flags().StringVar(&updateRole, "role", "", "new role")
	usersUpdateCmd.Flags().StringVar(&updateDevzapp, "devzapp-link", "", "contact link shown in referral links (empty clears)")

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
}
