package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const bodySummaryLimit = 200

var ErrRequestFailed = errors.New("request to homework statuses API failed")

// BadStatusError is returned for any non-2xx answer of the API.
type BadStatusError struct {
	Code    int
	Body    []byte
	Summary string
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("homework statuses API returned status %d: %s", e.Code, e.Summary)
}

type Client interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (json.RawMessage, error)
}

type client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

func NewClient(endpoint, token string, timeout time.Duration) Client {
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		token:      token,
	}
}

func (c *client) HomeworkStatuses(ctx context.Context, fromDate int64) (json.RawMessage, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	query := request.URL.Query()
	query.Set("from_date", strconv.FormatInt(fromDate, 10))
	request.URL.RawQuery = query.Encode()

	request.Header.Set("Authorization", "OAuth "+c.token)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w: %w", ErrRequestFailed, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll (response.Body): %w: %w", ErrRequestFailed, err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode > 299 {
		return nil, &BadStatusError{
			Code:    response.StatusCode,
			Body:    body,
			Summary: summarizeBody(body, response.Header.Get("Content-Type")),
		}
	}

	return body, nil
}

// summarizeBody сокращает тело ошибки до пригодного для уведомления вида,
// шлюз во время инцидентов отдаёт HTML-страницы вместо JSON
func summarizeBody(body []byte, contentType string) string {
	if strings.Contains(contentType, "text/html") {
		if title := htmlTitle(body); title != "" {
			return title
		}
	}

	summary := strings.TrimSpace(string(body))
	runes := []rune(summary)
	if len(runes) > bodySummaryLimit {
		summary = string(runes[:bodySummaryLimit]) + "..."
	}

	return summary
}

func htmlTitle(body []byte) string {
	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	title := strings.TrimSpace(document.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(document.Find("h1").First().Text())
	}

	return title
}
