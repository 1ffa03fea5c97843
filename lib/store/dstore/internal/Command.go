package internal

import (
	"encoding/binary"
	"fmt"
)

// CommandType defines the possible operations for the state machine.
type CommandType uint8

const (
	CommandTStore  CommandType = iota // Insert or replace the phone number(s) of a name.
	CommandTRemove                    // Delete the entry of a name.
)

func (ct CommandType) String() string {
	switch ct {
	case CommandTStore:
		return "Store"
	case CommandTRemove:
		return "Remove"
	default:
		return fmt.Sprintf("Unknown(%d)", ct)
	}
}

// headerSize is the size of the fixed part of a serialized command (type + key length)
const headerSize = 1 + 4

// Command represents a command to be executed by the state machine (a single entry in the raft log)
type Command struct {
	Type  CommandType
	Key   string
	Value string
}

// SizeBytes returns the exact number of bytes needed to serialize this command
func (command *Command) SizeBytes() int {
	return headerSize + len(command.Key) + len(command.Value)
}

// Serialize serializes a command into a byte array with the format:
// 1 byte for operation type,
// 4 bytes for key length (big endian),
// N bytes for key data,
// M bytes for value data (optional)
func (command *Command) Serialize() []byte {
	result := make([]byte, command.SizeBytes())

	result[0] = byte(command.Type)
	binary.BigEndian.PutUint32(result[1:headerSize], uint32(len(command.Key)))
	copy(result[headerSize:], command.Key)
	copy(result[headerSize+len(command.Key):], command.Value)

	return result
}

// Deserialize extracts all Command fields from a byte array.
func (command *Command) Deserialize(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("data too short for command")
	}

	command.Type = CommandType(data[0])
	keyLen := binary.BigEndian.Uint32(data[1:headerSize])

	if uint64(len(data)) < uint64(headerSize)+uint64(keyLen) {
		return fmt.Errorf("data too short for key of length %d", keyLen)
	}

	end := headerSize + int(keyLen)
	command.Key = string(data[headerSize:end])
	command.Value = string(data[end:])

	return nil
}
