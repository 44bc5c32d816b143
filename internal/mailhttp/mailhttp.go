/*
Package mailhttp implements the HTTP collaborator for the disposable
mail service.

The remote API is a single fixed endpoint that dispatches on the
"action" query parameter and needs no authentication of any kind.
Every exchange is a one-shot GET; the response is either a JSON
document or, for attachment downloads, the raw bytes.  This package
hides only the exchange itself.  What query to send and what shape to
decode into are the caller's business, which lets the same GetJSON
entry point serve the listing, hydration, and any future response
shape without duplicated request logic.
*/
package mailhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the service's API endpoint.  Queries are appended
// as the URL's query component.
const DefaultBaseURL = "https://www.1secmail.com/api/v1/"

const defaultTimeout = 30 * time.Second

// StatusError reports a non-2xx response from the service.  The
// service answers unknown message IDs and filenames this way too, so
// a StatusError may mean either a transport problem or a remote-side
// rejection; the body is not inspected to tell them apart.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote service returned %s", e.Status)
}

// Client issues GET exchanges against one base endpoint.  It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	base string
	hc   *http.Client
}

// New returns a client for the given endpoint.  An empty base means
// DefaultBaseURL; a nil hc means a private client with a request
// timeout.
func New(base string, hc *http.Client) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{base: base, hc: hc}
}

func (c *Client) get(ctx context.Context, query string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+query, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for query %q", query)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "requesting %q", query)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

// GetJSON performs the exchange for query and decodes the JSON
// response body into v.  Decode failures, including the message
// model's own strict-field errors, are wrapped so the caller can tell
// the decode stage from the transport stage.
func (c *Client) GetJSON(ctx context.Context, query string, v interface{}) error {
	resp, err := c.get(ctx, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "decoding response for query %q", query)
	}
	return nil
}

// GetBytes performs the exchange for query and returns the response
// body verbatim.
func (c *Client) GetBytes(ctx context.Context, query string) ([]byte, error) {
	resp, err := c.get(ctx, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response for query %q", query)
	}
	return b, nil
}
