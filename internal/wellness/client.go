// Package wellness implements the remote scheduling-service contract over
// its JSON HTTP API.
package wellness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/example/gym-scheduler/internal/booking"
)

const (
	defaultServicesURL = "https://services.mywellness.com"
	defaultCalendarURL = "https://calendar.mywellness.com"

	requestTimeout = 10 * time.Second
)

// Identity is the client identity the remote service expects on every call.
type Identity struct {
	AppID         string
	Client        string
	ClientVersion string
}

// Client talks to the remote service. A circuit breaker sits in front of the
// transport: after repeated consecutive network failures the remaining calls
// of a run fail fast instead of each waiting out the full timeout. A breaker
// rejection is an ordinary per-call failure for the caller.
type Client struct {
	hc          *http.Client
	id          Identity
	servicesURL string
	calendarURL string
	breaker     *gobreaker.CircuitBreaker[response]
}

type response struct {
	status int
	body   []byte
}

type Option func(*Client)

// WithBaseURLs overrides the service endpoints, used by tests.
func WithBaseURLs(services, calendar string) Option {
	return func(c *Client) {
		c.servicesURL = services
		c.calendarURL = calendar
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(id Identity, opts ...Option) *Client {
	c := &Client{
		hc:          &http.Client{Timeout: requestTimeout},
		id:          id,
		servicesURL: defaultServicesURL,
		calendarURL: defaultCalendarURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
		Name: "wellness",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return c
}

var _ booking.Service = (*Client)(nil)

type loginRequest struct {
	KeepMeLoggedIn bool   `json:"keepMeLoggedIn"`
	Password       string `json:"password"`
	Username       string `json:"username"`
}

type loginResponse struct {
	Token string `json:"token"`
	Data  struct {
		UserContext struct {
			ID string `json:"id"`
		} `json:"userContext"`
	} `json:"data"`
}

func (c *Client) Login(ctx context.Context, username, password string) (booking.LoginResult, error) {
	endpoint := fmt.Sprintf("%s/Application/%s/Login?_c=en-US", c.servicesURL, c.id.AppID)
	payload := loginRequest{KeepMeLoggedIn: true, Username: username, Password: password}

	status, body, err := c.do(ctx, http.MethodPost, endpoint, "", nil, payload)
	if err != nil {
		return booking.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	if status >= 400 {
		return booking.LoginResult{}, fmt.Errorf("login rejected (status=%d)", status)
	}

	var res loginResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return booking.LoginResult{}, fmt.Errorf("login: decode response: %w", err)
	}
	if res.Token == "" || res.Data.UserContext.ID == "" {
		return booking.LoginResult{}, errors.New("login response missing token or user id")
	}
	return booking.LoginResult{Token: res.Token, UserID: res.Data.UserContext.ID}, nil
}

type classItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PartitionDate int    `json:"partitionDate"`
	BookingInfo   struct {
		BookingOpensOn string `json:"bookingOpensOn"`
	} `json:"bookingInfo"`
}

func (c *Client) SearchClasses(ctx context.Context, token, facilityID string, from, to time.Time) ([]booking.Class, error) {
	endpoint := c.calendarURL + "/v2/enduser/class/Search"
	query := url.Values{
		"eventTypes": {"Class"},
		"facilityId": {facilityID},
		"fromDate":   {from.Format("2006-01-02")},
		"toDate":     {to.Format("2006-01-02")},
	}

	status, body, err := c.do(ctx, http.MethodGet, endpoint, token, query, nil)
	if err != nil {
		return nil, fmt.Errorf("search classes: %w", err)
	}
	if status >= 400 {
		return nil, fmt.Errorf("search classes failed (status=%d)", status)
	}

	var items []classItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("search classes: decode response: %w", err)
	}

	classes := make([]booking.Class, 0, len(items))
	for _, it := range items {
		classes = append(classes, booking.Class{
			ID:             it.ID,
			Name:           it.Name,
			PartitionDate:  it.PartitionDate,
			BookingOpensOn: it.BookingInfo.BookingOpensOn,
		})
	}
	return classes, nil
}

type bookRequest struct {
	PartitionDate int    `json:"partitionDate"`
	UserID        string `json:"userId"`
	ClassID       string `json:"classId"`
}

// Book issues one reservation call. The remote answers with either a JSON
// object {"result": ...} or, on application errors, a JSON array of
// {"errorMessage": ...}; both shapes are classified into an Outcome.
func (c *Client) Book(ctx context.Context, token, userID, classID string, partitionDate int) (booking.Outcome, error) {
	endpoint := c.calendarURL + "/v2/enduser/class/Book?_c=en-US"
	payload := bookRequest{PartitionDate: partitionDate, UserID: userID, ClassID: classID}

	status, body, err := c.do(ctx, http.MethodPost, endpoint, token, nil, payload)
	if err != nil {
		return booking.Outcome{}, fmt.Errorf("book: %w", err)
	}
	if status >= 400 {
		return booking.Outcome{
			Result:       booking.ResultError,
			ErrorMessage: fmt.Sprintf("remote returned status %d", status),
		}, nil
	}
	return classifyBookBody(body), nil
}

func classifyBookBody(body []byte) booking.Outcome {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return booking.Outcome{Result: booking.ResultUnknown}
	}

	switch trimmed[0] {
	case '{':
		var res struct {
			Result string `json:"result"`
		}
		if err := json.Unmarshal(trimmed, &res); err != nil || res.Result == "" {
			return booking.Outcome{Result: booking.ResultUnknown}
		}
		return booking.Outcome{Result: res.Result}
	case '[':
		var errs []struct {
			ErrorMessage string `json:"errorMessage"`
		}
		if err := json.Unmarshal(trimmed, &errs); err != nil || len(errs) == 0 {
			return booking.Outcome{Result: booking.ResultUnknown}
		}
		return booking.Outcome{Result: booking.ResultError, ErrorMessage: errs[0].ErrorMessage}
	default:
		return booking.Outcome{Result: booking.ResultUnknown}
	}
}

// do performs one HTTP round trip through the circuit breaker. It returns an
// error only for transport-level failures; HTTP error statuses come back as
// the status code for callers to interpret.
func (c *Client) do(ctx context.Context, method, endpoint, token string, query url.Values, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jb, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reqBody = bytes.NewReader(jb)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-mwapps-appid", c.id.AppID)
	req.Header.Set("x-mwapps-client", c.id.Client)
	req.Header.Set("x-mwapps-clientversion", c.id.ClientVersion)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if query != nil {
		q := req.URL.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	res, err := c.breaker.Execute(func() (response, error) {
		resp, err := c.hc.Do(req)
		if err != nil {
			return response{}, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return response{}, err
		}
		return response{status: resp.StatusCode, body: b}, nil
	})
	if err != nil {
		return 0, nil, err
	}
	return res.status, res.body, nil
}
