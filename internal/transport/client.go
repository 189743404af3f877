package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"smsgate/internal/models"
	"smsgate/internal/poller/interfaces"
	"smsgate/internal/providers"
	"smsgate/internal/structures"
)

const defaultTimeout = 10 * time.Second

// apiModel is the slice of /api/model.json the poller cares about.
// The modem serves it with a text/plain content type, so the body is
// always read whole and parsed manually.
type apiModel struct {
	Session struct {
		SecToken string `json:"secToken"`
	} `json:"session"`
	SMS struct {
		Msgs []apiMessage `json:"msgs"`
	} `json:"sms"`
}

// apiMessage is one inbox entry as the modem reports it. The id is usually
// a quoted number but older firmware sends it bare, hence RawMessage.
type apiMessage struct {
	ID     json.RawMessage `json:"id"`
	Sender string          `json:"sender"`
	RxTime string          `json:"rxTime"`
	Text   string          `json:"text"`
	Read   bool            `json:"read"`
}

// Client talks to the modem's HTTP API: session login via the secToken
// handshake, then authenticated reads of the SMS inbox. Cookies carry the
// session between requests.
type Client struct {
	baseURL  string
	password string
	hc       *http.Client
	loginHC  *http.Client
	logger   providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) (interfaces.TransportInterface, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	timeout := conf.Device.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:  "http://" + conf.Device.Host,
		password: conf.Device.Password,
		hc:       &http.Client{Jar: jar, Timeout: timeout},
		// The login form replies with a redirect that must not be followed.
		loginHC: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}, nil
}

// FetchMessages logs in and returns the modem's current SMS inbox.
func (c *Client) FetchMessages(ctx context.Context) ([]*models.Message, error) {
	if err := c.login(ctx); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	c.logger.Infof(providers.TypePoll, "Login successful")

	data, err := c.apiData(ctx)
	if err != nil {
		return nil, err
	}

	if len(data.SMS.Msgs) == 0 {
		return nil, nil
	}

	msgs := make([]*models.Message, 0, len(data.SMS.Msgs))
	for _, m := range data.SMS.Msgs {
		id, err := parseDeviceID(m.ID)
		if err != nil {
			c.logger.Warnf(providers.TypePoll, "Failed to parse SMS message id %s: %s", m.ID, err)
			continue
		}
		msgs = append(msgs, &models.Message{
			ID:      id,
			Number:  m.Sender,
			Time:    m.RxTime,
			Content: m.Text,
			Read:    m.Read,
		})
	}

	c.logger.Infof(providers.TypePoll, "Found %d SMS in modem inbox", len(msgs))
	return msgs, nil
}

// login acquires a session cookie: read the secToken from the unauthenticated
// API payload, then post it with the admin password to the config form.
func (c *Client) login(ctx context.Context) error {
	if c.password == "" {
		return fmt.Errorf("NETGEAR_ADMIN_PASSWORD not set")
	}

	data, err := c.apiData(ctx)
	if err != nil {
		return err
	}
	token := data.Session.SecToken
	if token == "" {
		return fmt.Errorf("no security token found in API response")
	}

	form := url.Values{
		"session.password": {c.password},
		"token":            {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Forms/config", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.loginHC.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusFound:
		return nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("login rejected with HTTP %d: %s", resp.StatusCode, body)
	}
}

func (c *Client) apiData(ctx context.Context) (*apiModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/model.json", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}

	var data apiModel
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("invalid API response: %w", err)
	}
	return &data, nil
}

func parseDeviceID(raw json.RawMessage) (int, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
