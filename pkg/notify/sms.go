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

type smsRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SMSChannel posts messages to an HTTP SMS gateway as JSON {to, message},
// authenticated with a bearer api key when one is configured.
type SMSChannel struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewSMSChannel(url string, apiKey string, httpClient *http.Client) *SMSChannel {
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}
	return &SMSChannel{url: url, apiKey: apiKey, httpClient: httpClient}
}

func (sc *SMSChannel) post(ctx context.Context, to string, message string) error {
	b, err := json.Marshal(smsRequest{To: to, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if sc.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+sc.apiKey)
	}

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms provider %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}

func (sc *SMSChannel) Send(user *models.User, title string, message string) bool {
	logger := notifyLogger(models.ChannelSMS)

	if user.PhoneNumber == nil || *user.PhoneNumber == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), providerTimeout)
	defer cancel()

	if err := sc.post(ctx, *user.PhoneNumber, title+": "+message); err != nil {
		logger.Error("Send sms failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return false
	}

	logger.Info("SMS sent", zap.Uint("user_id", user.ID), zap.String("title", title))
	return true
}
