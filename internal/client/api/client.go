// Package api is a thin HTTP client for the chess server's REST API.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/INDA23PlusPlus/redkar-chess/internal/client/display"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

// ComputerMove asks the server's computer player to move
const ComputerMove = "cccc"

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"`
}

// Error is a non-2xx response from the server
type Error struct {
	Status   int
	Response core.ErrorResponse
}

func (e *Error) Error() string {
	if e.Response.Code != "" {
		return fmt.Sprintf("request failed with status %d: %s (%s)", e.Status, e.Response.Error, e.Response.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
	Out        io.Writer // request/response trace
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// long-poll requests wait up to 25s on the server
			Timeout: 30 * time.Second,
		},
		Out: os.Stdout,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

func (c *Client) doRequest(method, path string, body any, result any) (int, error) {
	var bodyReader io.Reader
	var bodyData []byte
	if body != nil {
		var err error
		if bodyData, err = json.Marshal(body); err != nil {
			return 0, err
		}
		bodyReader = bytes.NewReader(bodyData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	display.Printf(c.Out, display.Blue, "[API] %s %s", method, path)
	if len(bodyData) > 0 {
		if c.Verbose {
			display.Printf(c.Out, display.Cyan, "Request Body:")
			var pretty any
			json.Unmarshal(bodyData, &pretty)
			display.PrettyPrintJSON(c.Out, pretty)
		} else {
			display.Printf(c.Out, display.Blue, "%s", bodyData)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		display.Printf(c.Out, display.Red, "[ERROR] %s", err)
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	statusColor := display.Green
	if resp.StatusCode >= 400 {
		statusColor = display.Red
	}
	display.Printf(c.Out, statusColor, "[%d %s]", resp.StatusCode, http.StatusText(resp.StatusCode))

	if c.Verbose && len(respBody) > 0 {
		var pretty any
		if err := json.Unmarshal(respBody, &pretty); err == nil {
			display.Printf(c.Out, display.Cyan, "Response Body:")
			display.PrettyPrintJSON(c.Out, pretty)
		} else {
			display.Printf(c.Out, display.Cyan, "Response:\n%s", respBody)
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		json.Unmarshal(respBody, &apiErr.Response)
		return resp.StatusCode, apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			display.Printf(c.Out, display.Red, "Response parse error: %s", err)
			return resp.StatusCode, err
		}
	}

	return resp.StatusCode, nil
}

// API Methods

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	_, err := c.doRequest(http.MethodGet, "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateGame(req core.CreateGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	_, err := c.doRequest(http.MethodPost, "/api/v1/games", req, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	_, err := c.doRequest(http.MethodGet, "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

// GetGameWithPoll waits until the game has moved past moveCount, ended
// or the server's wait timed out
func (c *Client) GetGameWithPoll(gameID string, moveCount int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := fmt.Sprintf("/api/v1/games/%s?wait=true&moveCount=%d", gameID, moveCount)
	_, err := c.doRequest(http.MethodGet, path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	_, err := c.doRequest(http.MethodDelete, "/api/v1/games/"+gameID, nil, nil)
	return err
}

// MakeMove plays move, or ComputerMove to start the computer player. The
// second result reports that the server accepted a computer move that is
// still being computed.
func (c *Client) MakeMove(gameID string, move string) (*core.GameResponse, bool, error) {
	var resp core.GameResponse
	status, err := c.doRequest(http.MethodPost, "/api/v1/games/"+gameID+"/moves", core.MoveRequest{Move: move}, &resp)
	return &resp, status == http.StatusAccepted, err
}

func (c *Client) GetLegalMoves(gameID string) (*core.LegalMovesResponse, error) {
	var resp core.LegalMovesResponse
	_, err := c.doRequest(http.MethodGet, "/api/v1/games/"+gameID+"/moves", nil, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	_, err := c.doRequest(http.MethodGet, "/api/v1/games/"+gameID+"/board", nil, &resp)
	return &resp, err
}

// RawRequest performs a raw HTTP request for debugging purposes. A body
// that is not JSON is sent as a JSON string.
func (c *Client) RawRequest(method, path string, body string) (json.RawMessage, error) {
	var bodyData any
	if body != "" {
		if err := json.Unmarshal([]byte(body), &bodyData); err != nil {
			bodyData = body
		}
	}

	var raw json.RawMessage
	_, err := c.doRequest(method, path, bodyData, &raw)
	return raw, err
}
