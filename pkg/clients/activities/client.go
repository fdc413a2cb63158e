package activities

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/ecolog/internal/config"
	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/observability"
)

const activitiesPath = "/api/activities/"

// Client exposes the activities backend operations used by the application.
type Client interface {
	ListActivities(ctx context.Context) ([]models.Activity, error)
	CreateActivity(ctx context.Context, activity models.NewActivity) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an activities API client using the provided configuration values.
func NewClient(cfg config.BackendConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{httpClient: restyClient}
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Operation string
	Code      int
	Body      string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("activities api error: operation=%s, code=%d, body=%s", e.Operation, e.Code, body)
}

// ListActivities returns every activity in the order the backend sends them.
func (c *APIClient) ListActivities(ctx context.Context) (list []models.Activity, err error) {
	started := time.Now()
	defer func() { observability.ObserveBackendCall("list", started, err) }()

	var result []models.Activity
	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&result).
		Get(activitiesPath)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	if !isSuccess(resp) {
		return nil, &StatusError{Operation: "list", Code: resp.StatusCode(), Body: resp.String()}
	}

	if result == nil {
		result = []models.Activity{}
	}
	return result, nil
}

// CreateActivity posts a new record. The created record is not read back.
func (c *APIClient) CreateActivity(ctx context.Context, activity models.NewActivity) (err error) {
	started := time.Now()
	defer func() { observability.ObserveBackendCall("create", started, err) }()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(activity).
		Post(activitiesPath)
	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	if !isSuccess(resp) {
		return &StatusError{Operation: "create", Code: resp.StatusCode(), Body: resp.String()}
	}

	return nil
}

func isSuccess(resp *resty.Response) bool {
	code := resp.StatusCode()
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
