package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/auth"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/email"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

// JsonApiRequest defines the expected structure for JSON API requests.
type JsonApiRequest struct {
	Method    string          `json:"method"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// JsonApiResponse defines the structure for JSON API responses.
type JsonApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ApiError is a method failure reported to the caller with an HTTP status.
type ApiError struct {
	Status  int
	Message string
}

func NewApiError(status int, message string) *ApiError {
	return &ApiError{Status: status, Message: message}
}

// apiMethodFunc defines the signature for handler methods.
type apiMethodFunc func(c *gin.Context, args json.RawMessage) (interface{}, *ApiError)

// JsonApiHandler serves the internal service API: one POST endpoint dispatching on "method".
// It is only exposed on the service port.
type JsonApiHandler struct {
	cfg            *config.Config
	rdb            *redis.Client // Optional, needed by getTestEmail
	listingService services.IListingService
	shutdownChan   chan<- struct{}
	methods        map[string]apiMethodFunc
}

// NewJsonApiHandler creates a new handler for the service API endpoint.
func NewJsonApiHandler(cfg *config.Config, rdb *redis.Client, listingService services.IListingService, shutdownChan chan<- struct{}) *JsonApiHandler {
	h := &JsonApiHandler{
		cfg:            cfg,
		rdb:            rdb,
		listingService: listingService,
		shutdownChan:   shutdownChan,
	}
	h.methods = map[string]apiMethodFunc{
		"shutdown":        h.shutdown,
		"issueAdminToken": h.issueAdminToken,
		"stats":           h.stats,
		"getTestEmail":    h.getTestEmail,
	}
	return h
}

// HandleRequest is the main entry point for POST /api
func (h *JsonApiHandler) HandleRequest(c *gin.Context) {
	var req JsonApiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, NewApiError(http.StatusBadRequest, "Invalid request format"))
		return
	}

	handlerFunc, ok := h.methods[req.Method]
	if !ok {
		h.sendErrorResponse(c, NewApiError(http.StatusNotFound, fmt.Sprintf("Unknown service method: %s", req.Method)))
		return
	}

	result, apiErr := handlerFunc(c, req.Arguments)
	if apiErr != nil {
		h.sendErrorResponse(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, JsonApiResponse{Success: true, Data: result})
}

func (h *JsonApiHandler) sendErrorResponse(c *gin.Context, apiErr *ApiError) {
	c.JSON(apiErr.Status, JsonApiResponse{Success: false, Error: apiErr.Message})
}

func (h *JsonApiHandler) shutdown(c *gin.Context, _ json.RawMessage) (interface{}, *ApiError) {
	slog.Info("Received shutdown command via Service API")
	select {
	case h.shutdownChan <- struct{}{}:
	default:
		slog.Warn("Shutdown channel already signaled or blocked")
	}
	return "Shutdown initiated", nil
}

// issueAdminToken expects ["subject"].
func (h *JsonApiHandler) issueAdminToken(c *gin.Context, args json.RawMessage) (interface{}, *ApiError) {
	var params []string
	if err := json.Unmarshal(args, &params); err != nil || len(params) != 1 || params[0] == "" {
		return nil, NewApiError(http.StatusBadRequest, "Invalid arguments: expected JSON array [subject]")
	}

	token, err := auth.GenerateAdminToken(params[0], h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		if errors.Is(err, auth.ErrEmptySecret) {
			return nil, NewApiError(http.StatusServiceUnavailable, "JWT_SECRET is not configured")
		}
		return nil, NewApiError(http.StatusInternalServerError, "Failed to issue token")
	}
	slog.Info("Admin token issued", "subject", params[0], "ttl", h.cfg.JwtTTL)
	return gin.H{"token": token, "expires_in": int64(h.cfg.JwtTTL.Seconds())}, nil
}

func (h *JsonApiHandler) stats(c *gin.Context, _ json.RawMessage) (interface{}, *ApiError) {
	return h.listingService.Stats(c.Request.Context()), nil
}

// getTestEmail expects [recipient, subject] and returns the email captured by the Redis sender.
func (h *JsonApiHandler) getTestEmail(c *gin.Context, args json.RawMessage) (interface{}, *ApiError) {
	if h.rdb == nil {
		return nil, NewApiError(http.StatusServiceUnavailable, "Redis is not configured")
	}
	var params []string
	if err := json.Unmarshal(args, &params); err != nil || len(params) != 2 {
		return nil, NewApiError(http.StatusBadRequest, "Invalid arguments: expected JSON array [recipient, subject]")
	}
	key := email.MockEmailKey(params[0], params[1])

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Poll briefly, the worker may not have processed the task yet
	for i := 0; i < 10; i++ {
		data, err := h.rdb.Get(ctx, key).Result()
		if err == nil {
			h.rdb.Del(ctx, key)
			var captured email.CapturedEmail
			if err := json.Unmarshal([]byte(data), &captured); err != nil {
				return nil, NewApiError(http.StatusInternalServerError, "Failed to parse stored email data")
			}
			return captured, nil
		}
		if !errors.Is(err, redis.Nil) {
			slog.Error("Service API: Redis error", "key", key, "error", err)
			return nil, NewApiError(http.StatusInternalServerError, "Redis error")
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil, NewApiError(http.StatusNotFound, fmt.Sprintf("Test email not found in Redis for key %s", key))
}
