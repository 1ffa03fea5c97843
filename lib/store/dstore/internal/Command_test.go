package internal

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSizeBytes tests the SizeBytes method
func TestSizeBytes(t *testing.T) {
	tests := []struct {
		name     string
		command  Command
		expected int
	}{
		{
			name:     "Store with key and value",
			command:  Command{Type: CommandTStore, Key: "testkey", Value: "89012345678"},
			expected: 1 + 4 + 7 + 11,
		},
		{
			name:     "Remove without value",
			command:  Command{Type: CommandTRemove, Key: "testkey"},
			expected: 1 + 4 + 7,
		},
		{
			name:     "Cyrillic key counts bytes",
			command:  Command{Type: CommandTRemove, Key: "Иван"},
			expected: 1 + 4 + 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.command.SizeBytes())
		})
	}
}

// TestSerializeDeserialize tests both Serialize and Deserialize methods
func TestSerializeDeserialize(t *testing.T) {
	tests := []struct {
		name    string
		command Command
	}{
		{"Store command", Command{Type: CommandTStore, Key: "Иван Хмурый", Value: "89012345678"}},
		{"Multi line value", Command{Type: CommandTStore, Key: "Иван", Value: "89012345678\r\n89098765432"}},
		{"Remove command", Command{Type: CommandTRemove, Key: "Иван Хмурый"}},
		{"Empty key", Command{Type: CommandTStore, Value: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.command.Serialize()
			require.Len(t, data, tt.command.SizeBytes())

			var decoded Command
			require.NoError(t, decoded.Deserialize(data))
			require.Equal(t, tt.command, decoded)
		})
	}
}

// TestDeserializeErrors tests error cases in Deserialize
func TestDeserializeErrors(t *testing.T) {
	tooLongKey := make([]byte, headerSize)
	binary.BigEndian.PutUint32(tooLongKey[1:headerSize], 1000)

	tests := []struct {
		name        string
		data        []byte
		expectedErr string
	}{
		{"Empty data", []byte{}, "data too short for command"},
		{"Data too short", []byte{1, 2}, "data too short for command"},
		{"Invalid key length", tooLongKey, "data too short for key of length 1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cmd Command
			err := cmd.Deserialize(tt.data)
			require.EqualError(t, err, tt.expectedErr)
		})
	}
}
