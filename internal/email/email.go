package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const resendAPIURL = "https://api.resend.com/emails"

// LogSender prints emails to the log instead of sending them. It is the
// development default so the app runs without any mail credentials.
type LogSender struct {
	senderAddress string
}

// Send logs the email content instead of delivering it.
func (s *LogSender) Send(to, subject, htmlBody string) error {
	slog.Info("Email (logged, not sent)",
		"from", s.senderAddress,
		"to", to,
		"subject", subject,
		"body", htmlBody,
	)
	return nil
}

// ResendSender delivers email through the Resend HTTP API.
type ResendSender struct {
	apiKey        string
	senderAddress string
	// baseURL is the API endpoint; tests point it at a local server.
	baseURL string
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send dispatches an email using the Resend API.
func (s *ResendSender) Send(to, subject, htmlBody string) error {
	payload := resendPayload{
		From:    s.senderAddress,
		To:      to,
		Subject: subject,
		HTML:    htmlBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling resend payload: %w", err)
	}

	url := s.baseURL
	if url == "" {
		url = resendAPIURL
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request to resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API returned an error: status %d", resp.StatusCode)
	}

	slog.Info("Sent email via Resend", "to", to, "subject", subject)
	return nil
}
