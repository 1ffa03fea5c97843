package protocol

import (
	"bytes"
	"strings"
	"unicode"
)

// Decode parses the raw wire text of a message.
//
// The first line must have the form `<TOKEN> [<KEY WORDS...>] <VERSION>`, all following
// lines form the value. Decode never fails: every violation of the protocol
// results in the Malformed() sentinel which can be sent back to the peer directly.
func Decode(raw string) Message {
	lines := strings.Split(normalize(raw), Separator)

	// first line: token, key words and version
	fields := strings.Fields(lines[0])
	if len(fields) < 2 {
		return Malformed()
	}
	if fields[len(fields)-1] != Version {
		return Malformed()
	}
	token := Token(fields[0])
	key := strings.Join(fields[1:len(fields)-1], " ")

	// remaining lines: value
	value := strings.Join(lines[1:], Separator)

	msg, err := NewMessage(token, key, value)
	if err != nil {
		return Malformed()
	}
	return msg
}

// Encode returns the wire representation of a message:
//
//	<TOKEN> [<KEY> ]<VERSION>\r\n
//	[<VALUE>\r\n]
//	\r\n
func Encode(msg Message) []byte {
	var sb strings.Builder
	sb.Grow(len(msg.token) + len(msg.key) + len(Version) + len(msg.value) + 8)

	sb.WriteString(string(msg.token))
	sb.WriteString(" ")
	if msg.key != "" {
		sb.WriteString(msg.key)
		sb.WriteString(" ")
	}
	sb.WriteString(Version)
	sb.WriteString(Separator)
	if msg.value != "" {
		sb.WriteString(msg.value)
		sb.WriteString(Separator)
	}
	sb.WriteString(Separator)

	return []byte(sb.String())
}

// IsComplete reports whether buf ends with the message terminator
func IsComplete(buf []byte) bool {
	return bytes.HasSuffix(buf, terminator)
}

var terminator = []byte(Terminator)

// normalize strips leading whitespace and all trailing line separators of a raw message
func normalize(raw string) string {
	raw = strings.TrimLeftFunc(raw, unicode.IsSpace)
	for strings.HasSuffix(raw, Separator) {
		raw = strings.TrimSuffix(raw, Separator)
	}
	return raw
}
