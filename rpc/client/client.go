package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ValentinKolb/rksok/rpc/common"
	"github.com/ValentinKolb/rksok/rpc/protocol"
	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("client")

// ErrUnparsableResponse is returned if the server answered with something that is not a protocol response
var ErrUnparsableResponse = errors.New("client: cannot parse response")

// Exchange is a single request/response pair including the raw wire text of both
type Exchange struct {
	Request     protocol.Message
	Response    protocol.Message
	RawRequest  string
	RawResponse string
}

// IPhonebookClient talks to a phonebook server. Every call uses a new connection.
type IPhonebookClient interface {
	// Get looks up the phones of name
	Get(name string) (Exchange, error)
	// Write stores phone for name, replacing earlier phones
	Write(name, phone string) (Exchange, error)
	// Delete removes the entry of name
	Delete(name string) (Exchange, error)
	// Do sends an arbitrary request
	Do(req protocol.Message) (Exchange, error)
}

// NewPhonebookClient creates a new client for the server in config
//
// Usage:
//
//	c, err := client.NewPhonebookClient(config, tcp.NewTCPClientTransport(config.MaxMessageSize))
//	ex, err := c.Get("Иван Хмурый")
//	fmt.Println(client.Describe(ex.Request, ex.Response))
func NewPhonebookClient(config common.ClientConfig, t transport.IRPCClientTransport) (IPhonebookClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("client: transport is nil")
	}
	return &phonebookClient{config: config, transport: t}, nil
}

type phonebookClient struct {
	config    common.ClientConfig
	transport transport.IRPCClientTransport
}

// --------------------------------------------------------------------------
// Interface Methods (docu see IPhonebookClient)
// --------------------------------------------------------------------------

func (c *phonebookClient) Get(name string) (Exchange, error) {
	req, err := protocol.NewGetRequest(canonicalName(name))
	if err != nil {
		return Exchange{}, err
	}
	return c.Do(req)
}

func (c *phonebookClient) Write(name, phone string) (Exchange, error) {
	req, err := protocol.NewWriteRequest(canonicalName(name), strings.TrimSpace(phone))
	if err != nil {
		return Exchange{}, err
	}
	return c.Do(req)
}

func (c *phonebookClient) Delete(name string) (Exchange, error) {
	req, err := protocol.NewDeleteRequest(canonicalName(name))
	if err != nil {
		return Exchange{}, err
	}
	return c.Do(req)
}

func (c *phonebookClient) Do(req protocol.Message) (Exchange, error) {
	raw := protocol.Encode(req)
	ex := Exchange{Request: req, RawRequest: string(raw)}

	resp, err := c.transport.Send(c.config.Endpoint, raw, c.config.Timeout)
	ex.RawResponse = string(resp)
	if err != nil {
		return ex, err
	}
	Logger.Debugf("%s %q -> %q", req.Token().Name(), req.Key(), ex.RawResponse)

	if !startsWithStatus(ex.RawResponse) {
		return ex, fmt.Errorf("%w: %q", ErrUnparsableResponse, ex.RawResponse)
	}
	ex.Response = protocol.Decode(ex.RawResponse)
	return ex, nil
}

// canonicalName trims the name and collapses inner whitespace to single spaces
func canonicalName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// startsWithStatus reports whether raw begins with a response status followed by a space
func startsWithStatus(raw string) bool {
	token, _, ok := strings.Cut(raw, " ")
	return ok && protocol.Token(token).IsResponse()
}
