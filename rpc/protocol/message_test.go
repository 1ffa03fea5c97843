package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		token   Token
		key     string
		value   string
		wantErr error
	}{
		{"Get", VerbGet, "Иван Хмурый", "", nil},
		{"Write", VerbWrite, "Иван", "89012345678\r\n02", nil},
		{"KeyAtLimit", VerbGet, strings.Repeat("я", MaxKeyLength), "", nil},
		{"KeyTooLong", VerbGet, strings.Repeat("я", MaxKeyLength+1), "", ErrKeyTooLong},
		{"KeyNotCanonical", VerbGet, " Иван", "", ErrInvalidKey},
		{"KeyDoubleSpace", VerbGet, "Иван  Хмурый", "", ErrInvalidKey},
		{"UnknownToken", Token("ПРИВЕТ"), "Иван", "", ErrUnknownToken},
		{"GetWithValue", VerbGet, "Иван", "1", ErrValueNotAllowed},
		{"NotFoundWithValue", StatusNotFound, "", "1", ErrValueNotAllowed},
		{"ValueWithEmptyLine", VerbWrite, "Иван", "1\r\n\r\n2", ErrInvalidValue},
		{"ValueLeadingBreak", VerbWrite, "Иван", "\r\n1", ErrInvalidValue},
		{"ValueTrailingBreak", VerbWrite, "Иван", "1\r\n", ErrInvalidValue},
		{"ValueInvalidUTF8", VerbWrite, "Иван", "\xff\xfe", ErrInvalidEncoding},
		{"KeyInvalidUTF8", VerbGet, "Ив\xffан", "", ErrInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.token, tt.key, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Malformed(), msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, msg.Token())
			assert.Equal(t, tt.key, msg.Key())
			assert.Equal(t, tt.value, msg.Value())
		})
	}
}

func TestFactories(t *testing.T) {
	assert.True(t, Malformed().IsMalformed())
	assert.False(t, Malformed().HasKey())

	ok := NewOKResponse("1")
	assert.Equal(t, StatusOK, ok.Token())
	assert.True(t, ok.HasValue())

	// invalid values degrade instead of panicking
	assert.True(t, NewOKResponse("\r\n\r\n").IsMalformed())
	assert.Equal(t, StatusNotApproved, NewNotApprovedResponse("a\r\n\r\nb").Token())

	assert.Equal(t, StatusNotFound, NewNotFoundResponse().Token())
	assert.Equal(t, StatusApproved, NewApprovedResponse().Token())
}

func TestApprovalCheck(t *testing.T) {
	msg, err := NewApprovalCheck("\r\nЗОПИШИ Иван РКСОК/1.0\r\n123\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, VerbApprovalCheck, msg.Token())
	assert.False(t, msg.HasKey())
	assert.Equal(t, "ЗОПИШИ Иван РКСОК/1.0\r\n123", msg.Value())
	assert.Equal(t, "АМОЖНА? РКСОК/1.0\r\nЗОПИШИ Иван РКСОК/1.0\r\n123\r\n\r\n", msg.String())
}

func TestTokens(t *testing.T) {
	for _, tok := range []Token{VerbGet, VerbWrite, VerbDelete, VerbApprovalCheck} {
		assert.True(t, tok.IsKnown())
		assert.True(t, tok.IsRequest(), tok)
		assert.False(t, tok.IsResponse(), tok)
	}
	for _, tok := range []Token{StatusOK, StatusNotFound, StatusNotApproved, StatusIncorrectRequest, StatusApproved} {
		assert.True(t, tok.IsResponse(), tok)
	}

	assert.Equal(t, "GET", VerbGet.Name())
	assert.Equal(t, "INCORRECT_REQUEST", StatusIncorrectRequest.Name())
	assert.Equal(t, "UNKNOWN", Token("foo").Name())
	assert.False(t, Token("foo").IsResponse())
	assert.True(t, VerbWrite.CarriesValue())
	assert.False(t, VerbDelete.CarriesValue())
}
