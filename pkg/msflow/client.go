package msflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/pkg/msauth"
	"github.com/sitelog/sitelog/pkg/reference"
	"github.com/sitelog/sitelog/pkg/timesheet"
)

// Client talks to the two Power Automate flows backing the timesheet:
// one returning reference data, one appending a submission to the
// spreadsheet. Requests carry the signed-in user's bearer token.
type Client struct {
	auth         msauth.Provider
	referenceURL string
	submitURL    string
}

func NewClient(auth msauth.Provider, referenceURL, submitURL string) *Client {
	return &Client{auth: auth, referenceURL: referenceURL, submitURL: submitURL}
}

// referenceResponse is the flow's reference payload. Managers and Admins
// together form the employee roster; Projects double as site names.
type referenceResponse struct {
	Managers []string `json:"Managers"`
	Admins   []string `json:"Admins"`
	Plants   []string `json:"Plants"`
	Projects []string `json:"Projects"`
}

// FetchReferenceData asks the reference flow for the current roster.
func (c *Client) FetchReferenceData(ctx context.Context) (reference.Data, error) {
	body, err := c.post(ctx, c.referenceURL, []byte("{}"))
	if err != nil {
		return reference.Data{}, fmt.Errorf("reference flow: %w", err)
	}

	var response referenceResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return reference.Data{}, fmt.Errorf("reference flow: decoding response: %w", err)
	}

	employees := make([]string, 0, len(response.Managers)+len(response.Admins))
	employees = append(employees, response.Managers...)
	employees = append(employees, response.Admins...)

	return reference.Data{
		Employees: employees,
		Plant:     response.Plants,
		Sites:     response.Projects,
		Admins:    response.Admins,
	}, nil
}

// Submit hands a finished timesheet payload to the submission flow.
func (c *Client) Submit(ctx context.Context, payload timesheet.Payload) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit flow: encoding payload: %w", err)
	}
	if _, err := c.post(ctx, c.submitURL, encoded); err != nil {
		return fmt.Errorf("submit flow: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	client, err := c.auth.Client(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warnf("flow call to %s returned %d: %s", url, resp.StatusCode, string(responseBody))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return responseBody, nil
}
