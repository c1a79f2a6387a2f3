// Package client talks to the registry backend over HTTP. It owns the
// wire types, the request timeout and the error translation from HTTP
// statuses into typed APIErrors the callers can branch on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestTimeout bounds every call. A slow backend must surface as a
// timeout error rather than hang the UI loop.
const RequestTimeout = 12 * time.Second

const (
	timeoutMessage = "Tempo limite ao conectar com o servidor."
	genericMessage = "Erro ao conectar com o servidor."
)

// APIError carries the HTTP status and the server's human-readable
// message. Timeouts are reported as status 408.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

func IsTimeout(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusRequestTimeout
}

// TokenFunc supplies the current bearer token, empty when logged out.
type TokenFunc func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

func New(baseURL string, token TokenFunc) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: RequestTimeout},
		token:   token,
	}
}

// Wire types mirror the backend's JSON shapes.

type User struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	DevzappLink *string `json:"devzappLink"`
	Role        string  `json:"role"`
}

type Church struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Municipality struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StateCode string `json:"stateCode"`
}

// Indication is the server-side supporter record as it crosses the
// wire. CreatedAt stays a string here; parsing happens at the
// reconciliation boundary so one bad timestamp can't fail a fetch.
type Indication struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Phone        *string      `json:"phone"`
	Email        *string      `json:"email"`
	IndicatedBy  string       `json:"indicatedBy"`
	Church       Church       `json:"church"`
	Municipality Municipality `json:"municipality"`
	CreatedBy    User         `json:"createdBy"`
	CreatedAt    string       `json:"createdAt"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type IndicationFilter struct {
	ChurchID       string
	MunicipalityID string
	IndicatedBy    string
	Query          string
	DateFrom       string
	DateTo         string
}

type CreateIndicationInput struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	IndicatedBy    string `json:"indicatedBy"`
	ChurchID       string `json:"churchId"`
	MunicipalityID string `json:"municipalityId"`
}

type PublicSignupInput struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	ChurchName       string `json:"churchName"`
	MunicipalityName string `json:"municipalityName"`
	IndicatedBy      string `json:"indicatedBy"`
}

type PublicOptions struct {
	Churches       []string `json:"churches"`
	Municipalities []string `json:"municipalities"`
}

type CreateUserInput struct {
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	DevzappLink *string `json:"devzappLink,omitempty"`
}

type UpdateUserInput struct {
	Email       *string `json:"email,omitempty"`
	Name        *string `json:"name,omitempty"`
	Password    *string `json:"password,omitempty"`
	Role        *string `json:"role,omitempty"`
	DevzappLink *string `json:"devzappLink,omitempty"`
}

// Login authenticates and returns the token plus profile. The caller
// stores them; the client itself stays stateless.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the profile behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: genericMessage}
	}
	return out.User, nil
}

func (c *Client) ListIndications(ctx context.Context, filter IndicationFilter) ([]Indication, error) {
	q := url.Values{}
	setIf := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	setIf("churchId", filter.ChurchID)
	setIf("municipalityId", filter.MunicipalityID)
	setIf("indicatedBy", filter.IndicatedBy)
	setIf("q", filter.Query)
	setIf("dateFrom", filter.DateFrom)
	setIf("dateTo", filter.DateTo)

	var out struct {
		Indications []Indication `json:"indications"`
	}
	if err := c.do(ctx, http.MethodGet, "/indications", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Indications, nil
}

func (c *Client) CreateIndication(ctx context.Context, input CreateIndicationInput) (*Indication, error) {
	var out struct {
		Indication *Indication `json:"indication"`
	}
	if err := c.do(ctx, http.MethodPost, "/indications", nil, input, &out); err != nil {
		return nil, err
	}
	return out.Indication, nil
}

func (c *Client) DeleteIndication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/indications/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListChurches(ctx context.Context) ([]Church, error) {
	var out struct {
		Churches []Church `json:"churches"`
	}
	if err := c.do(ctx, http.MethodGet, "/churches", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Churches, nil
}

func (c *Client) CreateChurch(ctx context.Context, name string) (*Church, error) {
	var out struct {
		Church *Church `json:"church"`
	}
	if err := c.do(ctx, http.MethodPost, "/churches", nil, map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return out.Church, nil
}

func (c *Client) ListMunicipalities(ctx context.Context) ([]Municipality, error) {
	var out struct {
		Municipalities []Municipality `json:"municipalities"`
	}
	if err := c.do(ctx, http.MethodGet, "/municipalities", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Municipalities, nil
}

func (c *Client) CreateMunicipality(ctx context.Context, name, stateCode string) (*Municipality, error) {
	body := map[string]string{"name": name, "stateCode": stateCode}
	var out struct {
		Municipality *Municipality `json:"municipality"`
	}
	if err := c.do(ctx, http.MethodPost, "/municipalities", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Municipality, nil
}

// PublicOptions and CreatePublicIndication back the referral-link
// signup flow; neither sends a token.
func (c *Client) PublicOptions(ctx context.Context) (*PublicOptions, error) {
	var out PublicOptions
	if err := c.do(ctx, http.MethodGet, "/public/options", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePublicIndication(ctx context.Context, input PublicSignupInput) (*Indication, error) {
	var out struct {
		Indication *Indication `json:"indication"`
	}
	if err := c.do(ctx, http.MethodPost, "/public/indications", nil, input, &out); err != nil {
		return nil, err
	}
	return out.Indication, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/users", nil, input, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, input, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &APIError{Status: http.StatusRequestTimeout, Message: timeoutMessage}
		}
		return &APIError{Status: 0, Message: genericMessage}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: genericMessage}
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: genericMessage}
	}
	return nil
}

// errorMessage pulls the message out of the {error, message} envelope,
// tolerating non-JSON error bodies from proxies.
func errorMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return genericMessage
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
