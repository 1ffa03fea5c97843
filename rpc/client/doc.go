// Package client implements a client for the phonebook server.
//
// Key Components:
//
//   - NewPhonebookClient: Factory function that creates an IPhonebookClient which builds
//     protocol requests, sends them over the configured transport and decodes the answer.
//     Every call returns an Exchange holding the raw request and response text.
//
//   - Describe: Renders the answer to a request as a human readable sentence.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Transport:      "tcp",
//	  Endpoint:       "localhost:3333",
//	  Timeout:        5 * time.Second,
//	  MaxMessageSize: common.DefaultMaxMessageSize,
//	}
//
//	c, _ := client.NewPhonebookClient(config, tcp.NewTCPClientTransport(config.MaxMessageSize))
//	ex, err := c.Write("Иван Хмурый", "89012345678")
//	if err == nil {
//	  fmt.Println(client.Describe(ex.Request, ex.Response))
//	}
//
// Thread Safety:
//
//	The client holds no connection state and can be used concurrently.
package client
