package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

type pushRequest struct {
	UserID  uint   `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// PushChannel forwards messages to a push gateway. Without a gateway url the
// stored notification row is the delivery: clients pull it from the
// notifications api, so the send only logs and succeeds.
type PushChannel struct {
	url        string
	httpClient *http.Client
}

func NewPushChannel(url string, httpClient *http.Client) *PushChannel {
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}
	return &PushChannel{url: url, httpClient: httpClient}
}

func (pc *PushChannel) post(ctx context.Context, payload pushRequest) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pc.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}

func (pc *PushChannel) Send(user *models.User, title string, message string) bool {
	logger := notifyLogger(models.ChannelPush)

	if pc.url == "" {
		logger.Info("Push delivered in-app", zap.Uint("user_id", user.ID), zap.String("title", title))
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), providerTimeout)
	defer cancel()

	if err := pc.post(ctx, pushRequest{UserID: user.ID, Title: title, Message: message}); err != nil {
		logger.Error("Send push failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return false
	}

	logger.Info("Push sent", zap.Uint("user_id", user.ID), zap.String("title", title))
	return true
}
