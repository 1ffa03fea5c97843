package protocol

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// --------------------------------------------------------------------------
// Wire Constants
// --------------------------------------------------------------------------

const (
	// Version is the only protocol identifier accepted on the wire
	Version = "РКСОК/1.0"
	// Separator terminates a single line
	Separator = "\r\n"
	// Terminator marks the end of a message (an empty line)
	Terminator = "\r\n\r\n"
	// MaxKeyLength is the maximum number of characters (runes) of a key
	MaxKeyLength = 30
)

// --------------------------------------------------------------------------
// Construction Errors
// --------------------------------------------------------------------------

var (
	ErrUnknownToken    = errors.New("protocol: unknown token")
	ErrKeyTooLong      = fmt.Errorf("protocol: key longer than %d characters", MaxKeyLength)
	ErrInvalidKey      = errors.New("protocol: key is not in canonical form")
	ErrValueNotAllowed = errors.New("protocol: token does not carry a value")
	ErrInvalidValue    = errors.New("protocol: value contains an empty line or a leading/trailing line break")
	ErrInvalidEncoding = errors.New("protocol: key or value is not valid utf-8")
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// A Message can only be created through NewMessage (or the factory functions
// below) and is never modified afterwards. The zero value is not a valid
// message, use Malformed() for the sentinel.
//
// Messages are comparable, two messages are equal if token, key and value are equal.
type Message struct {
	token Token
	key   string // empty if absent
	value string // empty if absent
}

// NewMessage validates all fields and returns a well-formed message.
// If any field violates the protocol rules an error is returned together with
// the MALFORMED sentinel, so callers that only care about the wire can ignore the error.
func NewMessage(token Token, key, value string) (Message, error) {
	if !token.IsKnown() {
		return Malformed(), fmt.Errorf("%w: %q", ErrUnknownToken, string(token))
	}
	if !utf8.ValidString(key) || !utf8.ValidString(value) {
		return Malformed(), ErrInvalidEncoding
	}
	if utf8.RuneCountInString(key) > MaxKeyLength {
		return Malformed(), ErrKeyTooLong
	}
	if key != strings.Join(strings.Fields(key), " ") {
		return Malformed(), ErrInvalidKey
	}
	if value != "" {
		if !token.CarriesValue() {
			return Malformed(), fmt.Errorf("%w: %s", ErrValueNotAllowed, token.Name())
		}
		if strings.Contains(Separator+value+Separator, Terminator) {
			return Malformed(), ErrInvalidValue
		}
	}
	return Message{token: token, key: key, value: value}, nil
}

// Malformed returns the sentinel message used for every syntax violation.
// It is a regular response and can be sent to the peer as is.
func Malformed() Message {
	return Message{token: StatusIncorrectRequest}
}

// Token returns the verb or status of the message
func (m Message) Token() Token {
	return m.token
}

// Key returns the key of the message (empty if absent)
func (m Message) Key() string {
	return m.key
}

// Value returns the value of the message (empty if absent)
func (m Message) Value() string {
	return m.value
}

// HasKey reports whether the message carries a key
func (m Message) HasKey() bool {
	return m.key != ""
}

// HasValue reports whether the message carries a value
func (m Message) HasValue() bool {
	return m.value != ""
}

// IsMalformed reports whether the message is the MALFORMED sentinel (or any НИПОНЯЛ response)
func (m Message) IsMalformed() bool {
	return m.token == StatusIncorrectRequest
}

// String returns the wire representation of the message
func (m Message) String() string {
	return string(Encode(m))
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewGetRequest creates a new lookup request
func NewGetRequest(key string) (Message, error) {
	return NewMessage(VerbGet, key, "")
}

// NewWriteRequest creates a new write request
func NewWriteRequest(key, value string) (Message, error) {
	return NewMessage(VerbWrite, key, value)
}

// NewDeleteRequest creates a new delete request
func NewDeleteRequest(key string) (Message, error) {
	return NewMessage(VerbDelete, key, "")
}

// NewApprovalCheck wraps the raw text of a client request into an approval request.
// Surrounding line breaks of the raw request are removed since the encoder adds the terminator.
func NewApprovalCheck(rawRequest string) (Message, error) {
	return NewMessage(VerbApprovalCheck, "", normalize(rawRequest))
}

// NewOKResponse creates a new success response, value may be empty
func NewOKResponse(value string) Message {
	msg, err := NewMessage(StatusOK, "", value)
	if err != nil {
		return Malformed()
	}
	return msg
}

// NewNotFoundResponse creates a new not found response
func NewNotFoundResponse() Message {
	return Message{token: StatusNotFound}
}

// NewNotApprovedResponse creates a new rejection response with an optional comment
func NewNotApprovedResponse(comment string) Message {
	msg, err := NewMessage(StatusNotApproved, "", comment)
	if err != nil {
		return Message{token: StatusNotApproved}
	}
	return msg
}

// NewApprovedResponse creates a new approval response
func NewApprovedResponse() Message {
	return Message{token: StatusApproved}
}

// --------------------------------------------------------------------------
// Token Definition
// --------------------------------------------------------------------------

// Token is a single literal word identifying a request verb or a response status.
type Token string

// Request verbs
const (
	VerbGet           Token = "ОТДОВАЙ"
	VerbWrite         Token = "ЗОПИШИ"
	VerbDelete        Token = "УДОЛИ"
	VerbApprovalCheck Token = "АМОЖНА?"
)

// Response statuses
const (
	StatusOK               Token = "НОРМАЛДЫКС"
	StatusNotFound         Token = "НИНАШОЛ"
	StatusNotApproved      Token = "НИЛЬЗЯ"
	StatusIncorrectRequest Token = "НИПОНЯЛ"
	StatusApproved         Token = "МОЖНА"
)

// tokenInfo holds the static properties of a token
type tokenInfo struct {
	name         string
	isRequest    bool
	carriesValue bool
}

var tokens = map[Token]tokenInfo{
	VerbGet:                {name: "GET", isRequest: true},
	VerbWrite:              {name: "WRITE", isRequest: true, carriesValue: true},
	VerbDelete:             {name: "DELETE", isRequest: true},
	VerbApprovalCheck:      {name: "APPROVAL_CHECK", isRequest: true, carriesValue: true},
	StatusOK:               {name: "OK", carriesValue: true},
	StatusNotFound:         {name: "NOT_FOUND"},
	StatusNotApproved:      {name: "NOT_APPROVED", carriesValue: true},
	StatusIncorrectRequest: {name: "INCORRECT_REQUEST"},
	StatusApproved:         {name: "APPROVED"},
}

// IsKnown reports whether the token belongs to the protocol vocabulary
func (t Token) IsKnown() bool {
	_, ok := tokens[t]
	return ok
}

// IsRequest reports whether the token is a request verb
func (t Token) IsRequest() bool {
	return tokens[t].isRequest
}

// IsResponse reports whether the token is a response status
func (t Token) IsResponse() bool {
	return t.IsKnown() && !t.IsRequest()
}

// CarriesValue reports whether a message with this token may have a value
func (t Token) CarriesValue() bool {
	return tokens[t].carriesValue
}

// Name returns the ascii name of the token (e.g. GET, NOT_FOUND), "UNKNOWN" for foreign tokens.
// Used for logs and metric labels.
func (t Token) Name() string {
	if info, ok := tokens[t]; ok {
		return info.name
	}
	return "UNKNOWN"
}
