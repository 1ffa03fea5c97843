package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/rksok/cmd/book"
	"github.com/ValentinKolb/rksok/cmd/serve"
	"github.com/ValentinKolb/rksok/cmd/util"
	"github.com/ValentinKolb/rksok/rpc/protocol"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "rksok",
		Short: "phonebook server speaking the RKSOK protocol",
		Long: fmt.Sprintf(`rksok (v%s)

A phonebook server and client for the %s text protocol.
Every request can be checked by an external approval service
before it is applied to storage.`, Version, protocol.Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of rksok",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rksok v%s (protocol %s)\n", Version, protocol.Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(book.BookCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
