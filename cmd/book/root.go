package book

import (
	"github.com/ValentinKolb/rksok/cmd/util"
	"github.com/ValentinKolb/rksok/rpc/client"
	"github.com/spf13/cobra"
)

var (
	phonebook client.IPhonebookClient

	// BookCommands represents the phonebook client command group
	BookCommands = &cobra.Command{
		Use:               "book",
		Short:             "Talk to a phonebook server",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add connection flags
	util.SetupClientFlags(BookCommands)

	// Add subcommands
	BookCommands.AddCommand(getCmd)
	BookCommands.AddCommand(writeCmd)
	BookCommands.AddCommand(deleteCmd)
	BookCommands.AddCommand(interactiveCmd)
	BookCommands.AddCommand(perfTestCmd)
}

// setupClient initializes the phonebook client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config := util.GetClientConfig()
	t, err := util.GetClientTransport(config)
	if err != nil {
		return err
	}

	phonebook, err = client.NewPhonebookClient(*config, t)
	return err
}
