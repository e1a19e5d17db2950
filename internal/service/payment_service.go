package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/internal/transfer"
)

// PaymentService handles the PayPal subscription flow: create an order for
// the subscription fee, capture it, and unlock paid features on success.
type PaymentService interface {
	Setup(ctx context.Context) (*transfer.PayPalSetup, error)
	CreateOrder(ctx context.Context) (*transfer.PayPalOrder, error)
	CaptureOrder(ctx context.Context, userID int64, orderID string) (*transfer.PayPalOrder, error)
}

type paymentService struct {
	users        repository.UserRepository
	settingsRepo repository.SettingsRepository
	apiBase      string
	logger       *slog.Logger
}

func NewPaymentService(users repository.UserRepository, settingsRepo repository.SettingsRepository, apiBase string, logger *slog.Logger) PaymentService {
	return &paymentService{
		users:        users,
		settingsRepo: settingsRepo,
		apiBase:      apiBase,
		logger:       logger,
	}
}

// Setup returns what the checkout frontend needs to render the PayPal button.
func (p *paymentService) Setup(ctx context.Context) (*transfer.PayPalSetup, error) {
	settings, found, err := p.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		settings = models.DefaultSettings()
	}

	return &transfer.PayPalSetup{
		ClientID:        settings.PayPal.ClientID,
		Environment:     settings.PayPal.Environment,
		SubscriptionFee: settings.SubscriptionFee,
		Currency:        "USD",
	}, nil
}

// httpClient builds an OAuth2 client-credentials HTTP client against the
// PayPal token endpoint using the stored merchant credentials.
func (p *paymentService) httpClient(ctx context.Context) (*http.Client, error) {
	settings, found, err := p.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		settings = models.DefaultSettings()
	}
	if settings.PayPal.ClientID == "" || settings.PayPal.ClientSecret == "" {
		return nil, fmt.Errorf("paypal credentials are not configured")
	}

	conf := &clientcredentials.Config{
		ClientID:     settings.PayPal.ClientID,
		ClientSecret: settings.PayPal.ClientSecret,
		TokenURL:     p.apiBase + "/v1/oauth2/token",
	}
	return conf.Client(ctx), nil
}

func (p *paymentService) CreateOrder(ctx context.Context) (*transfer.PayPalOrder, error) {
	settings, found, err := p.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		settings = models.DefaultSettings()
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"description": "Velora companion subscription",
				"amount": map[string]string{
					"currency_code": "USD",
					"value":         fmt.Sprintf("%.2f", settings.SubscriptionFee),
				},
			},
		},
	}

	var order transfer.PayPalOrder
	if err := p.call(ctx, "/v2/checkout/orders", payload, &order); err != nil {
		return nil, err
	}

	p.logger.Info("paypal order created", "order_id", order.ID)
	return &order, nil
}

// CaptureOrder finalizes the payment. A COMPLETED capture grants the user the
// paid tier with its daily allowances.
func (p *paymentService) CaptureOrder(ctx context.Context, userID int64, orderID string) (*transfer.PayPalOrder, error) {
	var order transfer.PayPalOrder
	if err := p.call(ctx, fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID), map[string]any{}, &order); err != nil {
		return nil, err
	}

	if order.Status != "COMPLETED" {
		return &order, fmt.Errorf("payment not completed: %s", order.Status)
	}

	if err := p.users.SetPaid(ctx, userID, models.PaidDailyImageLimit, models.PaidDailyCallMinutes); err != nil {
		return &order, fmt.Errorf("activating subscription: %w", err)
	}

	p.logger.Info("subscription activated", "user_id", userID, "order_id", orderID)
	return &order, nil
}

func (p *paymentService) call(ctx context.Context, path string, payload, out any) error {
	client, err := p.httpClient(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiBase+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("calling paypal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("paypal returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
