package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"cprm/internal/apperror"
	"cprm/internal/validate"
)

const (
	productionBaseURL = "https://api.safaricom.co.ke"
	sandboxBaseURL    = "https://sandbox.safaricom.co.ke"

	timestampLayout = "20060102150405"

	maxReferenceLen   = 12
	maxDescriptionLen = 13
)

// Config carries the Daraja credentials and STK push parameters.
type Config struct {
	ConsumerKey     string
	ConsumerSecret  string
	ShortCode       string
	Passkey         string
	TransactionType string
	CallbackBaseURL string
	PartyB          string // defaults to ShortCode
	Production      bool
	// BaseURL overrides the environment-selected endpoint; used by tests.
	BaseURL string
}

type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	base := sandboxBaseURL
	if cfg.Production {
		base = productionBaseURL
	}
	if cfg.BaseURL != "" {
		base = cfg.BaseURL
	}
	if cfg.PartyB == "" {
		cfg.PartyB = cfg.ShortCode
	}

	return &Client{
		cfg:        cfg,
		baseURL:    base,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// AccessToken exchanges the configured consumer credentials for a bearer
// token via the OAuth client-credentials grant.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.cfg.ConsumerKey == "" || c.cfg.ConsumerSecret == "" {
		return "", apperror.New("M-Pesa API credentials are not configured on the server.", http.StatusInternalServerError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.Newf(http.StatusInternalServerError, "Failed to get M-Pesa access token: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", apperror.Newf(http.StatusInternalServerError, "Failed to get M-Pesa access token: %s", string(raw))
	}

	var tok tokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return "", apperror.Newf(http.StatusInternalServerError, "Failed to get M-Pesa access token: %v", err)
	}
	return tok.AccessToken, nil
}

// InitiateSTKPush validates the request, builds the signed payload and
// submits it. On success Daraja's synchronous acknowledgment is returned
// unchanged; the payment outcome arrives later on the callback URL.
func (c *Client) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error) {
	phone, err := validate.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, apperror.New("Invalid phone number format. Expected format: 254XXXXXXXXX.", http.StatusBadRequest)
	}
	amount, err := validate.ParseAmount(req.Amount)
	if err != nil {
		return nil, apperror.New("Invalid amount. Amount must be a number greater than or equal to 1.", http.StatusBadRequest)
	}
	if c.cfg.ShortCode == "" || c.cfg.Passkey == "" || c.cfg.TransactionType == "" || c.cfg.CallbackBaseURL == "" {
		return nil, apperror.New("Server configuration error for M-Pesa processing.", http.StatusInternalServerError)
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format(timestampLayout)
	payload := stkPushPayload{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password(c.cfg.ShortCode, c.cfg.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   c.cfg.TransactionType,
		Amount:            strconv.Itoa(int(math.Round(amount))),
		PartyA:            phone,
		PartyB:            c.cfg.PartyB,
		PhoneNumber:       phone,
		CallBackURL:       c.cfg.CallbackBaseURL + "/api/mpesa/callback",
		AccountReference:  truncate(req.AccountReference, maxReferenceLen),
		TransactionDesc:   truncate(req.Description, maxDescriptionLen),
	}

	body, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build stk push request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperror.Newf(http.StatusInternalServerError, "Failed to initiate M-Pesa STK push: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, stkPushError(resp.StatusCode, raw)
	}

	var ack STKPushResponse
	if err := json.Unmarshal(raw, &ack); err != nil {
		return nil, fmt.Errorf("decode stk push response: %w body=%s", err, string(raw))
	}
	return &ack, nil
}

// stkPushError surfaces Daraja's error code and message when the response
// body carries them, else a generic failure.
func stkPushError(status int, raw []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && (apiErr.ErrorCode != "" || apiErr.ErrorMessage != "") {
		msg := apiErr.ErrorMessage
		if msg == "" {
			msg = "Unknown Daraja Error"
		}
		code := apiErr.ErrorCode
		if code == "" {
			code = "N/A"
		}
		return apperror.Newf(status, "M-Pesa Error: %s (Code: %s)", msg, code)
	}
	return apperror.New("Failed to initiate M-Pesa STK push due to a server error.", http.StatusInternalServerError)
}

// password derives the Lipa Na M-Pesa password for a given timestamp.
func password(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
