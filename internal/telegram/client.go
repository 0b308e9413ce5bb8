package telegram

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const longPollSeconds = 30

// Client talks to the Bot API over HTTPS. It implements the router's
// Sender and FileFetcher.
type Client struct {
	baseURL string
	fileURL string
	token   string
	http    *http.Client
}

// NewClient returns a client for the given bot token.
func NewClient(token string) *Client {
	return &Client{
		baseURL: "https://api.telegram.org/bot" + token,
		fileURL: "https://api.telegram.org/file/bot" + token,
		token:   token,
		// Must outlast the long-poll window.
		http: &http.Client{Timeout: (longPollSeconds + 10) * time.Second},
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// GetUpdates long-polls for updates after offset.
func (c *Client) GetUpdates(ctx context.Context, offset int) ([]Update, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("timeout", strconv.Itoa(longPollSeconds))
	params.Set("allowed_updates", `["message"]`)

	raw, err := c.call(ctx, "getUpdates", params)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("decoding updates: %w", err)
	}

	return updates, nil
}

// Send posts a message to the chat topic.
func (c *Client) Send(ctx context.Context, chatID int64, threadID int, text string) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)

	if threadID != 0 {
		params.Set("message_thread_id", strconv.Itoa(threadID))
	}

	_, err := c.call(ctx, "sendMessage", params)

	return err
}

// Reply posts a message replying to messageID.
func (c *Client) Reply(ctx context.Context, chatID int64, messageID int, text string) error {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)
	params.Set("reply_to_message_id", strconv.Itoa(messageID))

	_, err := c.call(ctx, "sendMessage", params)

	return err
}

// FetchBase64 downloads the photo and returns it base64-encoded for the
// vision request.
func (c *Client) FetchBase64(ctx context.Context, photoID string) (string, error) {
	params := url.Values{}
	params.Set("file_id", photoID)

	raw, err := c.call(ctx, "getFile", params)
	if err != nil {
		return "", err
	}

	var file struct {
		FilePath string `json:"file_path"`
	}

	if err := json.Unmarshal(raw, &file); err != nil {
		return "", fmt.Errorf("decoding getFile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileURL+"/"+file.FilePath, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("file download: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

func (c *Client) call(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+method, bytes.NewBufferString(params.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", method, err)
	}

	if !api.OK {
		return nil, fmt.Errorf("%s: %s", method, api.Description)
	}

	return api.Result, nil
}
