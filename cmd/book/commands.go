package book

import (
	"fmt"
	"io"

	"github.com/ValentinKolb/rksok/rpc/client"
	"github.com/ValentinKolb/rksok/rpc/protocol"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [name]",
		Short: "Looks up the phones of a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := phonebook.Get(args[0])
			return printExchange(cmd.OutOrStdout(), ex, err)
		},
	}
	writeCmd = &cobra.Command{
		Use:   "write [name] [phone]",
		Short: "Stores the phones of a person, replacing earlier ones",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := phonebook.Write(args[0], args[1])
			return printExchange(cmd.OutOrStdout(), ex, err)
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [name]",
		Short: "Deletes the entry of a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := phonebook.Delete(args[0])
			return printExchange(cmd.OutOrStdout(), ex, err)
		},
	}
)

// statusStyles colours the answer by response status
var statusStyles = map[protocol.Token]color.Style{
	protocol.StatusOK:               color.New(color.FgGreen),
	protocol.StatusNotFound:         color.New(color.FgYellow),
	protocol.StatusNotApproved:      color.New(color.FgRed, color.OpBold),
	protocol.StatusIncorrectRequest: color.New(color.FgMagenta),
}

// printExchange prints the raw request and response followed by the human readable answer
func printExchange(w io.Writer, ex client.Exchange, err error) error {
	if ex.RawRequest != "" {
		_, _ = fmt.Fprintf(w, "\nЗапрос: %q\nОтвет: %q\n\n", ex.RawRequest, ex.RawResponse)
	}
	if err != nil {
		return err
	}

	answer := client.Describe(ex.Request, ex.Response)
	if style, ok := statusStyles[ex.Response.Token()]; ok {
		answer = style.Render(answer)
	}
	_, _ = fmt.Fprintln(w, answer)
	return nil
}
