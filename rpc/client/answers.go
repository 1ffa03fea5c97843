package client

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/rksok/rpc/protocol"
)

// answers holds the human readable answer per request verb and response status.
// {name} is the name, {payload} the payload of the response.
var answers = map[protocol.Token]map[protocol.Token]string{
	protocol.VerbGet: {
		protocol.StatusOK:               "Телефон человека {name} найден: {payload}",
		protocol.StatusNotFound:         "Телефон человека {name} не найден на сервере РКСОК",
		protocol.StatusNotApproved:      "Органы проверки запретили тебе искать телефон человека {name} {payload}",
		protocol.StatusIncorrectRequest: "Сервер не смог понять запрос на получение данных, который мы отправили.",
	},
	protocol.VerbWrite: {
		protocol.StatusOK:               "Телефон человека {name} записан",
		protocol.StatusNotApproved:      "Органы проверки запретили тебе сохранять телефон человека {name} {payload}",
		protocol.StatusIncorrectRequest: "Сервер не смог понять запрос на запись данных, который мы отправили",
	},
	protocol.VerbDelete: {
		protocol.StatusOK:               "Телефон человека {name} удалён",
		protocol.StatusNotFound:         "Телефон человека {name} не найден на сервере РКСОК",
		protocol.StatusNotApproved:      "Органы проверки запретили тебе удалять телефон человека {name} {payload}",
		protocol.StatusIncorrectRequest: "Сервер не смог понять запрос на удаление данных, который мы отправили",
	},
}

// Describe renders the answer of the server to req as a human readable sentence
func Describe(req, resp protocol.Message) string {
	payload := resp.Value()
	if resp.Token() == protocol.StatusNotApproved {
		payload = "\nКомментарий органов: " + payload
	}

	if byStatus, ok := answers[req.Token()]; ok {
		if tmpl, ok := byStatus[resp.Token()]; ok {
			return strings.NewReplacer("{name}", req.Key(), "{payload}", payload).Replace(tmpl)
		}
	}
	return fmt.Sprintf("Сервер ответил %s на запрос %s", resp.Token(), req.Token())
}
