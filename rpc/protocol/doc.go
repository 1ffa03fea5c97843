// Package protocol implements the RKSOK wire protocol: the Message value type
// and the text codec that converts messages to and from their wire form.
//
// A message consists of a first line with a token, an optional key and the
// protocol version, followed by optional value lines and an empty line:
//
//	ЗОПИШИ Иван Хмурый РКСОК/1.0\r\n
//	89012345678\r\n
//	\r\n
//
// Key Components:
//
//   - Message: Immutable value used for requests and responses. Messages can only
//     be built with NewMessage (or one of the factory functions), which enforces
//     the protocol rules (known token, key length, which tokens carry a value).
//     Invalid input never produces a partially valid message.
//
//   - Token: Closed set of request verbs (ОТДОВАЙ, ЗОПИШИ, УДОЛИ, АМОЖНА?) and
//     response statuses (НОРМАЛДЫКС, НИНАШОЛ, НИЛЬЗЯ, НИПОНЯЛ, МОЖНА).
//
//   - Decode / Encode: Text codec. Decode never returns an error, syntax errors
//     result in the Malformed() sentinel (НИПОНЯЛ), which is itself a valid
//     response. For every message accepted by NewMessage, Decode(Encode(m)) == m.
package protocol
