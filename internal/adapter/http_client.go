package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/utils"
	"github.com/eunio-health/eunio-sync/models"
)

// pullPageSize is the page length requested from the pull endpoint. Pages
// are stitched together inside PullSince; callers always see the full range.
const pullPageSize = 200

type httpRemoteGateway struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPRemoteGateway constructs the resty-backed gateway from the client
// adapter configuration. Transport errors (timeouts, refused connections)
// surface as ErrNetwork; HTTP statuses are mapped through mapHTTPError.
func NewHTTPRemoteGateway(cfg config.ClientAdapter, log *logger.Logger) RemoteGateway {
	baseURL := cfg.HTTPAddress
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &httpRemoteGateway{client: cli, logger: log}
}

func (h *httpRemoteGateway) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteGateway) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRemoteGateway) Register(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: register request: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.storeToken(resp)
}

func (h *httpRemoteGateway) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: login request: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.storeToken(resp)
}

func (h *httpRemoteGateway) storeToken(resp *resty.Response) (models.Token, error) {
	tokenString, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(tokenString)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse user id: %w", err)
	}

	h.SetToken(tokenString)
	return models.Token{SignedString: tokenString, UserID: userID}, nil
}

func (h *httpRemoteGateway) PushBatch(ctx context.Context, items []models.PushItem) ([]models.PushResult, error) {
	req := models.PushRequest{Items: items, Length: len(items)}

	var pushResp models.PushResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(h.Token()).
		SetBody(req).
		SetResult(&pushResp).
		Post("/api/sync/push")
	if err != nil {
		return nil, fmt.Errorf("%w: push request: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if pushResp.Length != len(pushResp.Results) {
		return nil, fmt.Errorf("push response length mismatch: declared %d, got %d",
			pushResp.Length, len(pushResp.Results))
	}

	return pushResp.Results, nil
}

func (h *httpRemoteGateway) PullSince(ctx context.Context, entityType models.EntityType, since time.Time) ([]models.RemoteEntity, error) {
	var entities []models.RemoteEntity

	pageSince := since
	afterID := ""

	for {
		var pullResp models.PullResponse
		req := h.client.R().
			SetContext(ctx).
			SetAuthToken(h.Token()).
			SetQueryParam("type", string(entityType)).
			SetQueryParam("since", pageSince.UTC().Format(time.RFC3339Nano)).
			SetQueryParam("limit", strconv.Itoa(pullPageSize)).
			SetResult(&pullResp)
		if afterID != "" {
			req.SetQueryParam("after_id", afterID)
		}

		resp, err := req.Get("/api/sync/pull")
		if err != nil {
			return nil, fmt.Errorf("%w: pull request: %v", ErrNetwork, err)
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, err
		}

		entities = append(entities, pullResp.Entities...)

		if !pullResp.HasMore || len(pullResp.Entities) == 0 {
			return entities, nil
		}

		last := pullResp.Entities[len(pullResp.Entities)-1]
		pageSince = last.ServerUpdatedAt
		afterID = last.ID
	}
}

func (h *httpRemoteGateway) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/ping")
	if err != nil {
		return fmt.Errorf("%w: ping request: %v", ErrNetwork, err)
	}

	return mapHTTPError(resp)
}
