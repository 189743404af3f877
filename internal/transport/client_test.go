package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smsgate/internal/structures"
	"smsgate/internal/testutil"
)

const modelPayload = `{
	"session": {"secToken": "abc123"},
	"sms": {"msgs": [
		{"id": "3", "sender": "+491701111111", "rxTime": "08/15/25 10:30:00 AM", "text": "first", "read": false},
		{"id": 7, "sender": "+491702222222", "rxTime": "08/15/25 11:00:00 AM", "text": "second", "read": true}
	]}
}`

type fakeModem struct {
	model       string
	loginStatus int
	loginForms  []string
}

func (f *fakeModem) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/model.json", func(w http.ResponseWriter, r *http.Request) {
		// Real firmware serves JSON as text/plain
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(f.model))
	})
	mux.HandleFunc("/Forms/config", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.loginForms = append(f.loginForms, r.PostForm.Encode())
		if f.loginStatus == http.StatusFound {
			w.Header().Set("Location", "/index.html")
		}
		w.WriteHeader(f.loginStatus)
	})
	return mux
}

func newTestClient(t *testing.T, modem *fakeModem, password string) (*Client, *testutil.MockLogger) {
	t.Helper()
	srv := httptest.NewServer(modem.handler(t))
	t.Cleanup(srv.Close)

	conf := &structures.Config{
		Device: structures.DeviceConfig{
			Host:     strings.TrimPrefix(srv.URL, "http://"),
			Password: password,
		},
	}
	logger := &testutil.MockLogger{}
	client, err := NewClient(conf, logger)
	require.NoError(t, err)
	return client.(*Client), logger
}

func TestClient_FetchMessages(t *testing.T) {
	modem := &fakeModem{model: modelPayload, loginStatus: http.StatusFound}
	client, _ := newTestClient(t, modem, "secret")

	msgs, err := client.FetchMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, 3, msgs[0].ID)
	assert.Equal(t, "+491701111111", msgs[0].Number)
	assert.Equal(t, "08/15/25 10:30:00 AM", msgs[0].Time)
	assert.Equal(t, "first", msgs[0].Content)
	assert.False(t, msgs[0].Read)

	// Bare (unquoted) id from older firmware parses too
	assert.Equal(t, 7, msgs[1].ID)
	assert.True(t, msgs[1].Read)

	// Login posted the password and token from the model payload
	require.Len(t, modem.loginForms, 1)
	assert.Contains(t, modem.loginForms[0], "session.password=secret")
	assert.Contains(t, modem.loginForms[0], "token=abc123")
}

func TestClient_FetchMessages_EmptyInbox(t *testing.T) {
	modem := &fakeModem{
		model:       `{"session": {"secToken": "abc123"}, "sms": {"msgs": []}}`,
		loginStatus: http.StatusOK,
	}
	client, _ := newTestClient(t, modem, "secret")

	msgs, err := client.FetchMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestClient_FetchMessages_SkipsUnparsableID(t *testing.T) {
	modem := &fakeModem{
		model: `{
			"session": {"secToken": "abc123"},
			"sms": {"msgs": [
				{"id": "oops", "sender": "a", "rxTime": "t", "text": "bad"},
				{"id": "2", "sender": "b", "rxTime": "t", "text": "good"}
			]}
		}`,
		loginStatus: http.StatusOK,
	}
	client, logger := newTestClient(t, modem, "secret")

	msgs, err := client.FetchMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "good", msgs[0].Content)
	assert.True(t, logger.Contains("Failed to parse SMS message id"))
}

func TestClient_Login_MissingPassword(t *testing.T) {
	modem := &fakeModem{model: modelPayload, loginStatus: http.StatusOK}
	client, _ := newTestClient(t, modem, "")

	_, err := client.FetchMessages(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NETGEAR_ADMIN_PASSWORD not set")
	assert.Empty(t, modem.loginForms, "no login attempted without a password")
}

func TestClient_Login_Rejected(t *testing.T) {
	modem := &fakeModem{model: modelPayload, loginStatus: http.StatusUnauthorized}
	client, _ := newTestClient(t, modem, "wrong")

	_, err := client.FetchMessages(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login rejected with HTTP 401")
}

func TestClient_Login_MissingToken(t *testing.T) {
	modem := &fakeModem{
		model:       `{"session": {}, "sms": {"msgs": []}}`,
		loginStatus: http.StatusOK,
	}
	client, _ := newTestClient(t, modem, "secret")

	_, err := client.FetchMessages(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no security token")
}

func TestClient_Login_RedirectNotFollowed(t *testing.T) {
	modem := &fakeModem{model: modelPayload, loginStatus: http.StatusFound}
	client, _ := newTestClient(t, modem, "secret")

	_, err := client.FetchMessages(context.Background())
	require.NoError(t, err)

	// One login post plus two model fetches, no extra request to /index.html
	require.Len(t, modem.loginForms, 1)
}

func TestClient_ApiData_InvalidJSON(t *testing.T) {
	modem := &fakeModem{model: `<html>not json</html>`, loginStatus: http.StatusOK}
	client, _ := newTestClient(t, modem, "secret")

	_, err := client.FetchMessages(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API response")
}

func TestClient_ApiData_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	conf := &structures.Config{
		Device: structures.DeviceConfig{
			Host:     strings.TrimPrefix(srv.URL, "http://"),
			Password: "secret",
		},
	}
	client, err := NewClient(conf, &testutil.MockLogger{})
	require.NoError(t, err)

	_, err = client.FetchMessages(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestParseDeviceID(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
		wantErr  bool
	}{
		{`"5"`, 5, false},
		{`12`, 12, false},
		{`" 7 "`, 0, true},
		{`""`, 0, false},
		{`"abc"`, 0, true},
	}
	for _, tt := range tests {
		id, err := parseDeviceID([]byte(tt.raw))
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
		} else {
			assert.NoError(t, err, tt.raw)
			assert.Equal(t, tt.expected, id, tt.raw)
		}
	}
}
