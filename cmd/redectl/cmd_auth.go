package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kafune/rede-guti/internal/session"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate and store the session on this device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			fmt.Print("Senha: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return err
			}
			password = string(raw)
		}

		result, err := api.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}

		profile := session.Profile{
			ID:    result.User.ID,
			Email: result.User.Email,
			Name:  result.User.Name,
			Role:  result.User.Role,
		}
		if result.User.DevzappLink != nil {
			profile.DevzappLink = *result.User.DevzappLink
		}
		if err := sess.SetLogin(result.Token, profile); err != nil {
			return err
		}

		fmt.Printf("Logado como %s (%s)\n", profile.Name, profile.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Clear(); err != nil {
			return err
		}
		fmt.Println("Sessão encerrada.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, ok := sess.User()
		if !ok {
			fmt.Println("Nenhuma sessão ativa.")
			return nil
		}
		printProfile(profile)
		return nil
	},
}

func printProfile(p session.Profile) {
	fmt.Printf("%s <%s>\n", p.Name, p.Email)
	fmt.Printf("Perfil: %s\n", p.Role)
	if p.DevzappLink != "" {
		fmt.Printf("Contato: %s\n", p.DevzappLink)
	}
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
}
