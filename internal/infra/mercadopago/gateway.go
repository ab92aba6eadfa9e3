package mercadopago

import (
	"context"
	"strconv"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/turnos-scheduler/internal/domain/payment"
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*mppayment.Response, error)
}

// Gateway creates Checkout Pro preferences and reads payments through the
// Mercado Pago SDK.
type Gateway struct {
	preferences preferenceCreator
	payments    paymentGetter
	sandbox     bool
	now         func() time.Time
}

func New(accessToken string, sandbox bool) (*Gateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, errors.Wrap(err, "mercadopago config")
	}

	return &Gateway{
		preferences: preference.NewClient(cfg),
		payments:    mppayment.NewClient(cfg),
		sandbox:     sandbox,
		now:         time.Now,
	}, nil
}

func (g *Gateway) CreateCheckout(
	ctx context.Context,
	req payment.CheckoutRequest,
) (*payment.Checkout, error) {

	pref := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  req.Amount,
				CurrencyID: req.Currency,
			},
		},
		ExternalReference: req.ExternalReference,
		NotificationURL:   req.NotificationURL,
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		},
		AutoReturn: "approved",
	}

	if req.ExpiresIn > 0 {
		from := g.now()
		to := from.Add(req.ExpiresIn)
		pref.Expires = true
		pref.ExpirationDateFrom = &from
		pref.ExpirationDateTo = &to
	}

	res, err := g.preferences.Create(ctx, pref)
	if err != nil {
		return nil, errors.Wrap(err, "creating preference")
	}

	url := res.InitPoint
	if g.sandbox && res.SandboxInitPoint != "" {
		url = res.SandboxInitPoint
	}
	if url == "" {
		return nil, errors.New("preference without init point")
	}

	return &payment.Checkout{
		PreferenceID: res.ID,
		URL:          url,
	}, nil
}

func (g *Gateway) GetPayment(ctx context.Context, id string) (*payment.Detail, error) {
	numericID, err := strconv.Atoi(id)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid payment id %q", id)
	}

	res, err := g.payments.Get(ctx, numericID)
	if err != nil {
		return nil, errors.Wrap(err, "getting payment")
	}

	return &payment.Detail{
		ID:                strconv.Itoa(res.ID),
		Status:            res.Status,
		ExternalReference: res.ExternalReference,
	}, nil
}

var _ payment.Gateway = (*Gateway)(nil)
