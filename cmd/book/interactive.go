package book

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ValentinKolb/rksok/rpc/client"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Menu driven phonebook client",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), phonebook)
	},
}

const menu = `
Это клиент для инновационного протокола РКСОК. Данный клиент умеет работать
с сервером РКСОК, который умеет сохранять телефоны. Что ты хочешь сделать?

1 - получить телефон по имени
2 - записать телефон по имени
3 - удалить информацию по имени
0 - выйти

Введи цифру того варианта, который тебе нужен: `

// runInteractive asks for an operation, a name (and a phone) until the user quits or input ends
func runInteractive(in io.Reader, out io.Writer, c client.IPhonebookClient) error {
	scanner := bufio.NewScanner(in)
	ask := func(prompt string) (string, bool) {
		_, _ = fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	_, _ = fmt.Fprintln(out, "Ооо, привет!")
	for {
		mode, ok := ask(menu)
		if !ok || mode == "0" {
			return scanner.Err()
		}
		if mode != "1" && mode != "2" && mode != "3" {
			_, _ = fmt.Fprintln(out, "Упс, что-то ты ввёл не то, выбери один из вариантов")
			continue
		}

		name, ok := ask("Введи имя: ")
		if !ok {
			return scanner.Err()
		}

		var ex client.Exchange
		var err error
		switch mode {
		case "1":
			ex, err = c.Get(name)
		case "2":
			phone, ok := ask("Введи телефон: ")
			if !ok {
				return scanner.Err()
			}
			ex, err = c.Write(name, phone)
		case "3":
			ex, err = c.Delete(name)
		}

		// errors are shown and the menu continues
		if err := printExchange(out, ex, err); err != nil {
			if errors.Is(err, client.ErrUnparsableResponse) {
				_, _ = fmt.Fprintln(out, "Не смог разобрать ответ от сервера РКСОК :(")
			} else {
				_, _ = fmt.Fprintf(out, "Ошибка: %v\n", err)
			}
		}
	}
}
