package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kafune/rede-guti/internal/registry"
)

var listLocalOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the merged supporter and pastor collection, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !listLocalOnly {
			if err := engine.Refresh(cmd.Context()); err != nil {
				return err
			}
		}

		records := engine.Snapshot()
		if len(records) == 0 {
			fmt.Println("Nenhum cadastro encontrado.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOME\tWHATSAPP\tIGREJA\tMUNICÍPIO\tINDICADO POR\tTIPO\tDATA")
		for _, r := range records {
			created := ""
			if !r.CreatedAt.IsZero() {
				created = r.CreatedAt.Format("02/01/2006 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(r.ID), r.Name, r.Phone, r.ChurchName, r.MunicipalityName,
				r.IndicatedBy, kindLabel(r.Kind), created)
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one record with its referrer and referrals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.Refresh(cmd.Context()); err != nil {
			return err
		}

		records := engine.Snapshot()
		record, ok := findRecord(records, args[0])
		if !ok {
			return fmt.Errorf("cadastro %q não encontrado", args[0])
		}

		printRecord(record)

		if referrer, ok := registry.Referrer(records, record); ok {
			fmt.Printf("\nIndicado por: %s (%s)\n", referrer.Name, shortID(referrer.ID))
		}
		if referrals := registry.Referrals(records, record); len(referrals) > 0 {
			fmt.Printf("\nIndicou %d cadastro(s):\n", len(referrals))
			for _, r := range referrals {
				fmt.Printf("  - %s (%s)\n", r.Name, shortID(r.ID))
			}
		}
		return nil
	},
}

var addInput registry.AddSupporterInput

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a supporter on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.Refresh(cmd.Context()); err != nil {
			return err
		}

		record, err := engine.AddSupporter(cmd.Context(), addInput)
		if err != nil {
			if existing, ok := registry.IsDuplicate(err); ok {
				return fmt.Errorf("WhatsApp já cadastrado para %s (%s)", existing.Name, shortID(existing.ID))
			}
			return err
		}

		fmt.Printf("Cadastrado: %s (%s)\n", record.Name, record.ID)
		return nil
	},
}

var (
	pastorInput registry.AddPastorInput
	pastorInfo  registry.PastorInfo
)

var addPastorCmd = &cobra.Command{
	Use:   "add-pastor",
	Short: "Register a pastor on this device only",
	Long: `Registers a pastor record. Pastor records are stored on this device
and never sent to the server; they appear only in the merged listing
here. The --referred-by flag links the pastor to the record that
brought them in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Best effort: a fresh snapshot makes duplicate detection and
		// referrer resolution see the server side too.
		if err := engine.Refresh(cmd.Context()); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Aviso: não foi possível atualizar com o servidor:", errText(err))
		}

		input := pastorInput
		if pastorInfo != (registry.PastorInfo{}) {
			info := pastorInfo
			input.Info = &info
		}

		record, err := engine.AddPastor(input)
		if err != nil {
			if existing, ok := registry.IsDuplicate(err); ok {
				return fmt.Errorf("WhatsApp já cadastrado para %s (%s)", existing.Name, shortID(existing.ID))
			}
			return err
		}

		fmt.Printf("Pastor cadastrado neste dispositivo: %s (%s)\n", record.Name, record.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record (server-side or device-local by ID)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Cadastro removido.")
		return nil
	},
}

func printRecord(r registry.Record) {
	fmt.Printf("%s (%s)\n", r.Name, kindLabel(r.Kind))
	fmt.Printf("ID:          %s\n", r.ID)
	fmt.Printf("WhatsApp:    %s\n", r.Phone)
	fmt.Printf("Igreja:      %s\n", r.ChurchName)
	fmt.Printf("Município:   %s\n", r.MunicipalityName)
	fmt.Printf("Status:      %s\n", r.Status)
	fmt.Printf("Indicado por: %s\n", r.IndicatedBy)
	if !r.CreatedAt.IsZero() {
		fmt.Printf("Criado em:   %s\n", r.CreatedAt.Format("02/01/2006 15:04"))
	}
	if r.Pastor != nil {
		if r.Pastor.Denomination != "" {
			fmt.Printf("Denominação: %s\n", r.Pastor.Denomination)
		}
		if r.Pastor.MinistryRole != "" {
			fmt.Printf("Ministério:  %s\n", r.Pastor.MinistryRole)
		}
		if r.Pastor.MembersBand != "" {
			fmt.Printf("Membros:     %s\n", r.Pastor.MembersBand)
		}
	}
}

// findRecord matches a full ID or an unambiguous prefix.
func findRecord(records []registry.Record, id string) (registry.Record, bool) {
	var match registry.Record
	found := 0
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
		if strings.HasPrefix(r.ID, id) {
			match = r
			found++
		}
	}
	if found == 1 {
		return match, true
	}
	return registry.Record{}, false
}

func shortID(id string) string {
	if strings.HasPrefix(id, registry.LocalIDPrefix) {
		rest := id[len(registry.LocalIDPrefix):]
		if len(rest) > 8 {
			rest = rest[:8]
		}
		return registry.LocalIDPrefix + rest
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func kindLabel(kind registry.Kind) string {
	if kind == registry.KindPastor {
		return "Pastor"
	}
	return "Apoiador"
}

func init() {
	listCmd.Flags().BoolVar(&listLocalOnly, "local", false, "skip the server fetch, list cached data only")

	addCmd.Flags().StringVar(&addInput.Name, "name", "", "full name")
	addCmd.Flags().StringVar(&addInput.Phone, "phone", "", "WhatsApp number")
	addCmd.Flags().StringVar(&addInput.Email, "email", "", "email (optional)")
	addCmd.Flags().StringVar(&addInput.ChurchName, "church", "", "church name")
	addCmd.Flags().StringVar(&addInput.MunicipalityName, "municipality", "", "municipality name")
	addCmd.Flags().StringVar(&addInput.IndicatedBy, "indicated-by", "", "referrer name (defaults to direct signup)")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("phone")
	addCmd.MarkFlagRequired("church")
	addCmd.MarkFlagRequired("municipality")

	addPastorCmd.Flags().StringVar(&pastorInput.Name, "name", "", "full name")
	addPastorCmd.Flags().StringVar(&pastorInput.Phone, "phone", "", "WhatsApp number")
	addPastorCmd.Flags().StringVar(&pastorInput.ChurchName, "church", "", "church name")
	addPastorCmd.Flags().StringVar(&pastorInput.MunicipalityName, "municipality", "", "municipality name")
	addPastorCmd.Flags().StringVar(&pastorInput.ReferredBy, "referred-by", "", "ID of the record that referred this pastor")
	addPastorCmd.Flags().StringVar(&pastorInfo.Denomination, "denomination", "", "church denomination")
	addPastorCmd.Flags().StringVar(&pastorInfo.MinistryRole, "ministry-role", "", "role in the ministry")
	addPastorCmd.Flags().StringVar(&pastorInfo.MembersBand, "members", "", "congregation size band")
	addPastorCmd.Flags().StringVar(&pastorInfo.ChurchAddress, "church-address", "", "church address")
	addPastorCmd.MarkFlagRequired("name")
	addPastorCmd.MarkFlagRequired("phone")
	addPastorCmd.MarkFlagRequired("church")
	addPastorCmd.MarkFlagRequired("municipality")
}
