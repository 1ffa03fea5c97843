package book

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ValentinKolb/rksok/rpc/client"
	"github.com/ValentinKolb/rksok/rpc/protocol"
	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePhonebook answers from a map and records the calls
type fakePhonebook struct {
	mu      sync.Mutex
	entries map[string]string
	calls   []string
}

func newFakePhonebook() *fakePhonebook {
	return &fakePhonebook{entries: map[string]string{}}
}

func (f *fakePhonebook) exchange(req protocol.Message, resp protocol.Message) (client.Exchange, error) {
	return client.Exchange{
		Request:     req,
		Response:    resp,
		RawRequest:  req.String(),
		RawResponse: resp.String(),
	}, nil
}

func (f *fakePhonebook) Get(name string) (client.Exchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get "+name)
	req, _ := protocol.NewGetRequest(name)
	if v, ok := f.entries[name]; ok {
		return f.exchange(req, protocol.NewOKResponse(v))
	}
	return f.exchange(req, protocol.NewNotFoundResponse())
}

func (f *fakePhonebook) Write(name, phone string) (client.Exchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "write "+name)
	req, _ := protocol.NewWriteRequest(name, phone)
	f.entries[name] = phone
	return f.exchange(req, protocol.NewOKResponse(""))
}

func (f *fakePhonebook) Delete(name string) (client.Exchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete "+name)
	return client.Exchange{}, errors.New("connection refused")
}

func (f *fakePhonebook) Do(req protocol.Message) (client.Exchange, error) {
	return f.exchange(req, protocol.Malformed())
}

func TestPrintExchange(t *testing.T) {
	req, err := protocol.NewGetRequest("Иван")
	require.NoError(t, err)
	ex := client.Exchange{
		Request:     req,
		Response:    protocol.NewOKResponse("123"),
		RawRequest:  req.String(),
		RawResponse: protocol.NewOKResponse("123").String(),
	}

	var buf bytes.Buffer
	require.NoError(t, printExchange(&buf, ex, nil))
	out := color.ClearCode(buf.String())
	assert.Contains(t, out, `Запрос: "ОТДОВАЙ Иван РКСОК/1.0\r\n\r\n"`)
	assert.Contains(t, out, "Телефон человека Иван найден: 123")

	boom := errors.New("boom")
	assert.ErrorIs(t, printExchange(&buf, client.Exchange{}, boom), boom)
}

func TestInteractive(t *testing.T) {
	pb := newFakePhonebook()
	input := strings.Join([]string{
		"2", "Иван", "123", // write
		"1", "Иван", // get
		"7",              // invalid choice
		"3", "Иван", // delete fails, the loop goes on
		"0",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, runInteractive(strings.NewReader(input), &out, pb))

	assert.Equal(t, []string{"write Иван", "get Иван", "delete Иван"}, pb.calls)
	text := color.ClearCode(out.String())
	assert.Contains(t, text, "Телефон человека Иван записан")
	assert.Contains(t, text, "Телефон человека Иван найден: 123")
	assert.Contains(t, text, "Упс, что-то ты ввёл не то")
	assert.Contains(t, text, "Ошибка: connection refused")
}

func TestInteractiveEndOfInput(t *testing.T) {
	pb := newFakePhonebook()
	var out bytes.Buffer
	require.NoError(t, runInteractive(strings.NewReader("1\n"), &out, pb))
	assert.Empty(t, pb.calls)
}

func TestPerfTests(t *testing.T) {
	perfKeySpread = 3
	perfNumThreads = 1
	perfSkip = []string{"write", "get", "delete", "mixed"}
	t.Cleanup(func() { perfSkip = nil })

	pb := newFakePhonebook()
	results := runPerfTests(pb, perfTests(pb))
	require.Len(t, results, 5)

	for _, r := range results {
		if r.test == "get-missing" {
			assert.Greater(t, r.bench.N, 0)
			assert.Zero(t, r.errors.Count())
		} else {
			assert.Zero(t, r.bench.NsPerOp(), r.test)
		}
	}

	var buf bytes.Buffer
	printResults(&buf, results)
	assert.Contains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "get-missing")
}

func TestPerfKeysFitTheKeyLimit(t *testing.T) {
	perfKeySpread = 1000
	for _, k := range perfKeys("get-missing") {
		_, err := protocol.NewGetRequest(k)
		require.NoError(t, err, k)
	}
}
