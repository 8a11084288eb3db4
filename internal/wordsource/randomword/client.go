package randomword

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	DefaultURL        = "https://random-word-api.herokuapp.com/word"
	DefaultLength     = 5
	DefaultRetryDelay = 100 * time.Millisecond
	MaxRetryAttempts  = 10
)

type Config struct {
	URL    string
	Length int
	// Timeout of 0 keeps the transport default.
	Timeout time.Duration
	// RetryAttempts is the number of extra requests after the first one fails.
	// Values above MaxRetryAttempts are lowered to it.
	RetryAttempts uint
	RetryDelay    time.Duration
}

type Client struct {
	httpClient    *resty.Client
	url           string
	length        int
	retryAttempts uint
	retryDelay    time.Duration
}

func NewClient(config Config) *Client {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.Length <= 0 {
		config.Length = DefaultLength
	}
	if config.RetryAttempts > MaxRetryAttempts {
		config.RetryAttempts = MaxRetryAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	return &Client{
		httpClient:    client,
		url:           config.URL,
		length:        config.Length,
		retryAttempts: config.RetryAttempts,
		retryDelay:    config.RetryDelay,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type responseError struct {
	statusCode int
	body       string
}

func (e *responseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

// isRetryableError reports whether another request could succeed.
// Payloads that fail validation are not retried because the API answered.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidResponse) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var respErr *responseError
	if errors.As(err, &respErr) {
		return respErr.statusCode >= http.StatusInternalServerError ||
			respErr.statusCode == http.StatusTooManyRequests
	}
	return true
}

// FetchWord requests one word and returns it in lowercase.
func (client *Client) FetchWord(ctx context.Context) (string, error) {
	var word string
	if err := retry.Do(
		func() error {
			w, err := client.fetchWord(ctx)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			word = w
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.retryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Debug("retrying random word request",
				"attempt", n+1,
				"error", err,
			)
		}),
	); err != nil {
		return "", err
	}
	return word, nil
}

func (client *Client) fetchWord(ctx context.Context) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("length", strconv.Itoa(client.length)).
		Get(client.url)
	if err != nil {
		return "", fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return "", &responseError{statusCode: response.StatusCode(), body: response.String()}
	}

	body, err := ParseResponse([]byte(response.String()))
	if err != nil {
		return "", fmt.Errorf("ParseResponse > %w", err)
	}
	word, err := body.FirstWord()
	if err != nil {
		return "", fmt.Errorf("body.FirstWord > %w", err)
	}
	return word, nil
}
