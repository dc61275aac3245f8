package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/martijn/clientbook/internal/core/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotConfirmed = errors.New("deletion not confirmed (use --yes when not running in a terminal)")

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage client records",
	Long:  "Create, inspect, search, update and delete client records",
}

var clientsAddCmd = &cobra.Command{
	Use:   "add <name> <address> <phone-number>",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		id, err := services.ClientRepo.Create(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}

		log.Debug().Int64("id", id).Msg("client created")
		fmt.Fprintf(cmd.OutOrStdout(), "Client created with ID %d\n", id)
		return nil
	},
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		clients, err := services.ClientRepo.ListAll(cmd.Context())
		if err != nil {
			return err
		}

		return printClients(cmd.OutOrStdout(), clients)
	},
}

var clientsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseClientID(args[0])
		if err != nil {
			return err
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		client, err := services.ClientRepo.GetByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		if client == nil {
			return fmt.Errorf("client not found: %d", id)
		}

		return printClients(cmd.OutOrStdout(), []*domain.Client{client})
	},
}

var clientsSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find clients whose name, address or phone number contains text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		clients, err := services.ClientRepo.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printClients(cmd.OutOrStdout(), clients)
	},
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update one or more fields of a client",
	Example: `  clientbook clients update 3 --address "2 Side St"
  clientbook clients update 3 --name Robert --phone-number 555-0112`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseClientID(args[0])
		if err != nil {
			return err
		}

		changes, err := changesFromFlags(cmd)
		if err != nil {
			return err
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		updated, err := services.ClientRepo.Update(cmd.Context(), id, changes)
		if err != nil {
			return err
		}
		if !updated {
			return fmt.Errorf("client not found: %d", id)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Client %d updated successfully\n", id)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseClientID(args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errNotConfirmed
			}
			prompt := fmt.Sprintf("Are you sure you want to delete client %d? (yes/no): ", id)
			if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		deleted, err := services.ClientRepo.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("client not found: %d", id)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Client %d deleted successfully\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsGetCmd)
	clientsCmd.AddCommand(clientsSearchCmd)
	clientsCmd.AddCommand(clientsUpdateCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)

	// Flag names follow the column names with dashes.
	for _, f := range domain.Fields() {
		clientsUpdateCmd.Flags().String(flagName(f), "", "new "+strings.ReplaceAll(string(f), "_", " "))
	}
	clientsDeleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

func flagName(f domain.Field) string {
	return strings.ReplaceAll(string(f), "_", "-")
}

// changesFromFlags collects only the flags the user actually set, so an
// explicit empty value still clears a field.
func changesFromFlags(cmd *cobra.Command) (domain.Changes, error) {
	changes := domain.Changes{}
	for _, f := range domain.Fields() {
		name := flagName(f)
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, err
		}
		changes[f] = value
	}
	if err := changes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: set at least one of --name, --address, --phone-number", err)
	}
	return changes, nil
}

func parseClientID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid client id: %s", s)
	}
	return id, nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

func printClients(out io.Writer, clients []*domain.Client) error {
	if len(clients) == 0 {
		_, err := fmt.Fprintln(out, "No clients found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tADDRESS\tPHONE NUMBER")
	for _, client := range clients {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			client.ID,
			client.Name,
			client.Address,
			client.PhoneNumber,
		)
	}
	return w.Flush()
}
