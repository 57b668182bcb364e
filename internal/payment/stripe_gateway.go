package payment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/vogiaan1904/swiftseats/config"
)

type StripeGateway struct {
	sc *client.API
}

// NewStripeGateway uses the default Stripe backends when backends is nil.
func NewStripeGateway(cfg config.StripeConfig, backends *stripe.Backends) *StripeGateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, backends)
	return &StripeGateway{sc: sc}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.EventName),
					},
					UnitAmount: stripe.Int64(int64(req.UnitPrice)),
				},
				Quantity: stripe.Int64(int64(req.Quantity)),
			},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
	}
	params.Context = ctx
	params.AddMetadata(MetadataUserID, req.UserID)
	params.AddMetadata(MetadataEventID, req.EventID)
	params.AddMetadata(MetadataQuantity, strconv.Itoa(req.Quantity))

	s, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	return &CheckoutSession{
		ID:        s.ID,
		URL:       s.URL,
		ExpiresAt: time.Unix(s.ExpiresAt, 0),
	}, nil
}
