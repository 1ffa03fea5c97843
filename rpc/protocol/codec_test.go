package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	write, err := NewWriteRequest("Иван Хмурый", "89012345678\r\n02")
	require.NoError(t, err)
	get, err := NewGetRequest("Иван Хмурый")
	require.NoError(t, err)

	assert.Equal(t, "ЗОПИШИ Иван Хмурый РКСОК/1.0\r\n89012345678\r\n02\r\n\r\n", string(Encode(write)))
	assert.Equal(t, "ОТДОВАЙ Иван Хмурый РКСОК/1.0\r\n\r\n", string(Encode(get)))
	assert.Equal(t, "НИПОНЯЛ РКСОК/1.0\r\n\r\n", string(Encode(Malformed())))
	assert.Equal(t, "НОРМАЛДЫКС РКСОК/1.0\r\n\r\n", string(Encode(NewOKResponse(""))))
}

func TestDecodeRoundTrip(t *testing.T) {
	del, _ := NewDeleteRequest("Иван")
	write, _ := NewWriteRequest("Иван Хмурый", "1\r\n2")
	msgs := []Message{
		del,
		write,
		NewOKResponse("89012345678"),
		NewNotApprovedResponse("Уважаемые,\r\nнельзя"),
		NewApprovedResponse(),
		NewNotFoundResponse(),
		Malformed(),
	}
	for _, msg := range msgs {
		assert.Equal(t, msg, Decode(string(Encode(msg))))
	}
}

func TestDecode(t *testing.T) {
	t.Run("CanonicalizesKey", func(t *testing.T) {
		msg := Decode("ОТДОВАЙ   Иван \t Хмурый  РКСОК/1.0\r\n\r\n")
		assert.Equal(t, VerbGet, msg.Token())
		assert.Equal(t, "Иван Хмурый", msg.Key())
	})

	t.Run("LeadingBlankLines", func(t *testing.T) {
		msg := Decode("\r\n\r\nУДОЛИ Иван РКСОК/1.0\r\n\r\n")
		assert.Equal(t, VerbDelete, msg.Token())
	})

	t.Run("WithoutTerminator", func(t *testing.T) {
		msg := Decode("ЗОПИШИ Иван РКСОК/1.0\r\n123")
		assert.Equal(t, VerbWrite, msg.Token())
		assert.Equal(t, "123", msg.Value())
	})

	t.Run("KeyAtLimit", func(t *testing.T) {
		key := "Абвгдежзийклмнопрстуфхцчшщъыьэ"
		assert.Equal(t, key, Decode("ОТДОВАЙ "+key+" РКСОК/1.0\r\n\r\n").Key())
	})

	malformed := map[string]string{
		"Empty":          "",
		"OnlyBlank":      "\r\n\r\n",
		"NoVersion":      "ОТДОВАЙ Иван\r\n\r\n",
		"WrongVersion":   "ОТДОВАЙ Иван WRONG/9.9\r\n\r\n",
		"VersionOnly":    "РКСОК/1.0\r\n\r\n",
		"UnknownVerb":    "ДАЙ Иван РКСОК/1.0\r\n\r\n",
		"LowercaseVerb":  "отдовай Иван РКСОК/1.0\r\n\r\n",
		"KeyTooLong":     "ОТДОВАЙ Абвгдежзийклмнопрстуфхцчшщъыьэю РКСОК/1.0\r\n\r\n",
		"GetWithValue":   "ОТДОВАЙ Иван РКСОК/1.0\r\n123\r\n\r\n",
		"EmptyLineValue": "ЗОПИШИ Иван РКСОК/1.0\r\n1\r\n\r\n2\r\n\r\n",
		"Garbage":        "\x00\x01\x02",
		"InvalidUTF8":    "ЗОПИШИ Иван РКСОК/1.0\r\n\xff\xfe\r\n\r\n",
		"InvalidUTF8Key": "ОТДОВАЙ Ив\xffан РКСОК/1.0\r\n\r\n",
	}
	for name, raw := range malformed {
		t.Run(name, func(t *testing.T) {
			assert.True(t, Decode(raw).IsMalformed())
		})
	}
}

func TestIsComplete(t *testing.T) {
	assert.True(t, IsComplete([]byte("ОТДОВАЙ Иван РКСОК/1.0\r\n\r\n")))
	assert.False(t, IsComplete([]byte("ОТДОВАЙ Иван РКСОК/1.0\r\n")))
	assert.False(t, IsComplete(nil))
}
