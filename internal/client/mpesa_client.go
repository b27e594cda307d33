package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/config"
	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	tokenPath   = "/oauth/v1/generate"
	stkPushPath = "/mpesa/stkpush/v1/processrequest"

	tokenTimeout = 20 * time.Second
	pushTimeout  = 25 * time.Second

	transactionTypePayBill = "CustomerPayBillOnline"
	timestampLayout        = "20060102150405"

	// tokens are refreshed this long before Daraja expires them
	tokenExpiryMargin = 60
)

// Daraja expects timestamps in East Africa Time.
var eat = time.FixedZone("EAT", 3*60*60)

type MpesaClient struct {
	cfg        config.Mpesa
	httpClient *http.Client
	tokens     domain.TokenCache
	metrics    *metrics.PaymentMetrics
	tracer     trace.Tracer
	now        func() time.Time
	baseURL    string
}

type MpesaClientOption func(*MpesaClient)

// WithHTTPClient replaces the default client. Per-call deadlines still apply.
func WithHTTPClient(c *http.Client) MpesaClientOption {
	return func(m *MpesaClient) { m.httpClient = c }
}

func WithTokenCache(cache domain.TokenCache) MpesaClientOption {
	return func(m *MpesaClient) { m.tokens = cache }
}

func WithMetrics(pm *metrics.PaymentMetrics) MpesaClientOption {
	return func(m *MpesaClient) { m.metrics = pm }
}

func WithClock(now func() time.Time) MpesaClientOption {
	return func(m *MpesaClient) { m.now = now }
}

// WithBaseURL points the client at another Daraja host (tests, mocks).
func WithBaseURL(url string) MpesaClientOption {
	return func(m *MpesaClient) { m.baseURL = url }
}

func NewMpesaClient(cfg config.Mpesa, opts ...MpesaClientOption) *MpesaClient {
	c := &MpesaClient{
		cfg:        cfg,
		httpClient: &http.Client{},
		tracer:     otel.Tracer("mpesa-client"),
		now:        time.Now,
		baseURL:    cfg.BaseURL(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MpesaClient) NormalizePhone(raw string) string {
	return NormalizePhone(raw)
}

type stkPushBody struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// PushPayment sends an STK push. The customer's answer arrives later on the callback URL.
func (c *MpesaClient) PushPayment(ctx context.Context, req domain.StkPushRequest) (*domain.StkPushResult, error) {
	if !c.cfg.IsConfigured() {
		return nil, domain.ErrGatewayNotConfigured
	}

	ctx, span := c.tracer.Start(ctx, "mpesa.StkPush")
	defer span.End()

	timestamp := c.now().In(eat).Format(timestampLayout)
	password := base64.StdEncoding.EncodeToString([]byte(c.cfg.Shortcode + c.cfg.Passkey + timestamp))

	token, err := c.accessToken(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	accountReference := req.AccountReference
	if accountReference == "" {
		accountReference = c.cfg.AccountReference
	}
	transactionDesc := req.TransactionDesc
	if transactionDesc == "" {
		transactionDesc = c.cfg.TransactionDesc
	}

	body := stkPushBody{
		BusinessShortCode: c.cfg.Shortcode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   transactionTypePayBill,
		Amount:            req.Amount.IntPart(),
		PartyA:            req.Phone,
		PartyB:            c.cfg.Shortcode,
		PhoneNumber:       req.Phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  accountReference,
		TransactionDesc:   transactionDesc,
	}
	requestBytes, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+stkPushPath, bytes.NewReader(requestBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveGatewayRequest("stkpush", "error", started)
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveGatewayRequest("stkpush", strconv.Itoa(resp.StatusCode), started)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrGatewayRequest, resp.StatusCode)
	}

	var pushResponse domain.StkPushResponse
	if err := json.Unmarshal(responseBytes, &pushResponse); err != nil {
		// the push went out; missing identifiers are stored as null
		slog.Warn("undecodable STK push response", "error", err.Error())
	}

	return &domain.StkPushResult{
		RequestBody: requestBytes,
		Response:    pushResponse,
	}, nil
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   json.Number `json:"expires_in"`
}

func (c *MpesaClient) accessToken(ctx context.Context) (string, error) {
	cacheKey := c.tokenCacheKey()
	if c.tokens != nil {
		token, ok, err := c.tokens.GetToken(ctx, cacheKey)
		if err != nil {
			slog.Warn("mpesa token cache read failed", "error", err.Error())
		} else if ok && token != "" {
			return token, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, tokenTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tokenPath+"?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayAuth, err)
	}
	httpReq.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)
	httpReq.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveGatewayRequest("oauth", "error", started)
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveGatewayRequest("oauth", strconv.Itoa(resp.StatusCode), started)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrGatewayAuth, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayAuth, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: M-Pesa access token missing", domain.ErrGatewayAuth)
	}

	if c.tokens != nil {
		if ttl, err := tr.ExpiresIn.Int64(); err == nil && ttl > tokenExpiryMargin {
			if err := c.tokens.SetToken(ctx, cacheKey, tr.AccessToken, ttl-tokenExpiryMargin); err != nil {
				slog.Warn("mpesa token cache write failed", "error", err.Error())
			}
		}
	}

	return tr.AccessToken, nil
}

func (c *MpesaClient) tokenCacheKey() string {
	sum := sha256.Sum256([]byte(c.cfg.ConsumerKey))
	return fmt.Sprintf("mpesa:token:%s:%s", c.cfg.Environment, hex.EncodeToString(sum[:8]))
}
