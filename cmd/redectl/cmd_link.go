package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kafune/rede-guti/internal/client"
	"github.com/kafune/rede-guti/internal/registry"
)

var linkBaseURL string

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print the shareable self-signup link for the logged-in operator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, ok := sess.User()
		if !ok {
			return fmt.Errorf("nenhuma sessão ativa, faça login primeiro")
		}

		fmt.Println(registry.BuildSignupLink(linkBaseURL, profile.Name, profile.DevzappLink))
		return nil
	},
}

var (
	signupInput registry.AddSupporterInput
	signupLink  string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Self-signup through the public endpoint (no session required)",
	Long: `Registers a supporter through the public endpoint, the same flow the
shared referral link drives. The referrer name can come from --link
(a pasted referral link) or --indicated-by; with neither, the record
is tagged as a direct registration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		indicatedBy := signupInput.IndicatedBy
		if indicatedBy == "" && signupLink != "" {
			indicatedBy = registry.ParseIndicator(signupLink)
		}

		created, err := api.CreatePublicIndication(cmd.Context(), client.PublicSignupInput{
			Name:             signupInput.Name,
			Phone:            registry.NormalizePhone(signupInput.Phone),
			Email:            signupInput.Email,
			ChurchName:       signupInput.ChurchName,
			MunicipalityName: signupInput.MunicipalityName,
			IndicatedBy:      indicatedBy,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Cadastrado! %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

func init() {
	linkCmd.Flags().StringVar(&linkBaseURL, "base-url", "https://rede-guti.app", "site the link points at")

	signupCmd.Flags().StringVar(&signupInput.Name, "name", "", "full name")
	signupCmd.Flags().StringVar(&signupInput.Phone, "phone", "", "WhatsApp number")
	signupCmd.Flags().StringVar(&signupInput.Email, "email", "", "email (optional)")
	signupCmd.Flags().StringVar(&signupInput.ChurchName, "church", "", "church name")
	signupCmd.Flags().StringVar(&signupInput.MunicipalityName, "municipality", "", "municipality name")
	signupCmd.Flags().StringVar(&signupInput.IndicatedBy, "indicated-by", "", "referrer name")
	signupCmd.Flags().StringVar(&signupLink, "link", "", "referral link to take the referrer name from")
	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("phone")
	signupCmd.MarkFlagRequired("church")
	signupCmd.MarkFlagRequired("municipality")
}
