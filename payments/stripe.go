package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	stripeAPIBase = "https://api.stripe.com"

	// Provider calls must not hang a request handler indefinitely.
	requestTimeout = 10 * time.Second

	// Webhook timestamps older than this are rejected to limit replay.
	signatureTolerance = 5 * time.Minute
)

// Stripe implements Provider against the Stripe Checkout API.
type Stripe struct {
	apiKey        string
	webhookSecret string
	baseURL       string
	client        *http.Client
	now           func() time.Time
}

func NewStripe(apiKey, webhookSecret string) *Stripe {
	return &Stripe{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		baseURL:       stripeAPIBase,
		client:        &http.Client{Timeout: requestTimeout},
		now:           time.Now,
	}
}

type stripeSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
	Error         *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (s *Stripe) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][product_data][name]", "Order payment")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(toMinorUnits(req.Amount), 10))
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var sess stripeSession
	if err := s.post(ctx, "/v1/checkout/sessions", form, &sess); err != nil {
		return nil, err
	}
	if sess.URL == "" {
		return nil, fmt.Errorf("stripe returned empty checkout URL for session %q", sess.ID)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func (s *Stripe) GetStatus(ctx context.Context, sessionID string) (string, error) {
	var sess stripeSession
	if err := s.get(ctx, "/v1/checkout/sessions/"+url.PathEscape(sessionID), &sess); err != nil {
		return "", err
	}
	if sess.Status == "expired" {
		return StatusExpired, nil
	}
	return sess.PaymentStatus, nil
}

// VerifyWebhook checks the Stripe-Signature header (HMAC-SHA256 over
// "<timestamp>.<payload>") and parses the event into the session id and
// payment status the reconciliation logic cares about.
func (s *Stripe) VerifyWebhook(payload []byte, signatureHeader string) (*Event, error) {
	ts, sigs, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	if d := s.now().Sub(time.Unix(ts, 0)); d > signatureTolerance || d < -signatureTolerance {
		return nil, ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	verified := false
	for _, sig := range sigs {
		got, err := hex.DecodeString(sig)
		if err == nil && hmac.Equal(got, expected) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, ErrInvalidSignature
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object stripeSession `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("parse webhook event: %w", err)
	}

	return &Event{
		Type:      event.Type,
		SessionID: event.Data.Object.ID,
		Status:    event.Data.Object.PaymentStatus,
	}, nil
}

func parseSignatureHeader(header string) (ts int64, sigs []string, err error) {
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			ts, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, err
			}
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == 0 || len(sigs) == 0 {
		return 0, nil, errors.New("malformed signature header")
	}
	return ts, sigs, nil
}

func (s *Stripe) post(ctx context.Context, path string, form url.Values, out *stripeSession) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, out)
}

func (s *Stripe) get(ctx context.Context, path string, out *stripeSession) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req, out)
}

func (s *Stripe) do(req *http.Request, out *stripeSession) error {
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ErrUnavailable
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read stripe response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse stripe response (%d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return fmt.Errorf("stripe error (%d): %s", resp.StatusCode, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// toMinorUnits converts a decimal amount to the integer minor units the
// Stripe API expects.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
