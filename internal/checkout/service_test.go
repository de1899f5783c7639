package checkout

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/internal/config"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/internal/message"
	"github.com/alpiedelaletra/storefront/internal/messaging"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

type recordingOpener struct {
	links []string
	fail  int
}

func (o *recordingOpener) Open(ctx context.Context, link string) error {
	o.links = append(o.links, link)
	if o.fail > 0 {
		o.fail--
		return stderrors.New("link unreachable")
	}
	return nil
}

func testOptions() Options {
	return Options{
		BaseURL:       "https://wa.me",
		Recipient:     "5493415550101",
		AllowEmpty:    true,
		RedirectTo:    "/",
		RedirectDelay: 3 * time.Second,
	}
}

func filledStore(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.NewStore(cart.DefaultLimits())
	_, err := s.AddItem(cart.ItemInput{
		Product:      domain.ProductRef{ID: "1", Name: "Agenda Semanal", BasePrice: decimal.NewFromInt(5000)},
		Quantity:     2,
		Price:        decimal.NewFromInt(5000),
		SelectedSize: domain.SizeA5,
	})
	require.NoError(t, err)
	return s
}

func TestCheckout_ClearsAfterSuccessfulHandoff(t *testing.T) {
	opener := &recordingOpener{}
	svc := NewService(opener, testOptions(), zap.NewNop())
	store := filledStore(t)

	result, err := svc.Checkout(context.Background(), store, domain.BuyerInfo{FirstName: "Ana"})
	require.NoError(t, err)

	assert.Equal(t, domain.HandoffCleared, result.State)
	assert.True(t, store.IsEmpty())
	assert.Equal(t, 1, result.ItemCount)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "/", result.RedirectTo)
	assert.Equal(t, 3*time.Second, result.RedirectDelay)

	require.Len(t, opener.links, 1)
	assert.Equal(t, result.Link, opener.links[0])
	assert.True(t, strings.HasPrefix(result.Link, "https://wa.me/5493415550101?text="))

	text, err := url.QueryUnescape(strings.TrimPrefix(result.Link, "https://wa.me/5493415550101?text="))
	require.NoError(t, err)
	assert.Equal(t, result.Message, text)
	assert.Contains(t, text, "x2")
	assert.Contains(t, text, "$ 10.000")

	assert.Equal(t, []Transition{
		{From: domain.HandoffIdle, To: domain.HandoffFormatting},
		{From: domain.HandoffFormatting, To: domain.HandoffPending},
		{From: domain.HandoffPending, To: domain.HandoffCleared},
	}, result.History)
}

func TestCheckout_FailedHandoffKeepsCart(t *testing.T) {
	opener := &recordingOpener{fail: 1}
	svc := NewService(opener, testOptions(), zap.NewNop())
	store := filledStore(t)

	result, err := svc.Checkout(context.Background(), store, domain.BuyerInfo{})
	require.Error(t, err)

	var handoffErr *errors.ErrHandoffFailed
	require.True(t, stderrors.As(err, &handoffErr))
	assert.Equal(t, result.Link, handoffErr.Link)
	assert.EqualError(t, stderrors.Unwrap(err), "link unreachable")

	require.NotNil(t, result)
	assert.Equal(t, domain.HandoffFailed, result.State)
	assert.Equal(t, 1, store.Len())
}

func TestCheckout_KeepsItemsAddedDuringHandoff(t *testing.T) {
	store := filledStore(t)
	opener := messaging.OpenerFunc(func(ctx context.Context, link string) error {
		_, err := store.AddItem(cart.ItemInput{
			Product:      domain.ProductRef{ID: "cuaderno-uni-01", Name: "Cuaderno Universitario", BasePrice: decimal.NewFromInt(4200)},
			Quantity:     1,
			Price:        decimal.NewFromInt(4200),
			SelectedSize: domain.SizeA5,
		})
		return err
	})
	svc := NewService(opener, testOptions(), zap.NewNop())

	result, err := svc.Checkout(context.Background(), store, domain.BuyerInfo{})
	require.NoError(t, err)

	assert.Equal(t, domain.HandoffCleared, result.State)
	assert.NotContains(t, result.Message, "Cuaderno")
	assert.Equal(t, 1, result.ItemCount)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "cuaderno-uni-01", items[0].Product.ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCheckout_KeepsQuantityMergedDuringHandoff(t *testing.T) {
	store := filledStore(t)
	opener := messaging.OpenerFunc(func(ctx context.Context, link string) error {
		_, err := store.AddItem(cart.ItemInput{
			Product:      domain.ProductRef{ID: "1", Name: "Agenda Semanal", BasePrice: decimal.NewFromInt(5000)},
			Quantity:     3,
			Price:        decimal.NewFromInt(5000),
			SelectedSize: domain.SizeA5,
		})
		return err
	})
	svc := NewService(opener, testOptions(), zap.NewNop())

	_, err := svc.Checkout(context.Background(), store, domain.BuyerInfo{})
	require.NoError(t, err)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCheckout_RetriesUpToAttempts(t *testing.T) {
	opts := testOptions()
	opts.Attempts = 3
	opener := &recordingOpener{fail: 2}
	svc := NewService(opener, opts, zap.NewNop())
	store := filledStore(t)

	result, err := svc.Checkout(context.Background(), store, domain.BuyerInfo{})
	require.NoError(t, err)

	assert.Len(t, opener.links, 3)
	assert.Equal(t, domain.HandoffCleared, result.State)
	assert.True(t, store.IsEmpty())
	assert.Contains(t, result.History, Transition{From: domain.HandoffFailed, To: domain.HandoffFormatting})
}

func TestCheckout_AllAttemptsFail(t *testing.T) {
	opts := testOptions()
	opts.Attempts = 2
	opener := &recordingOpener{fail: 5}
	svc := NewService(opener, opts, zap.NewNop())
	store := filledStore(t)

	result, err := svc.Checkout(context.Background(), store, domain.BuyerInfo{})
	require.Error(t, err)
	assert.Len(t, opener.links, 2)
	assert.Equal(t, domain.HandoffFailed, result.State)
	assert.False(t, store.IsEmpty())
}

func TestCheckout_EmptyCartAllowed(t *testing.T) {
	opener := &recordingOpener{}
	svc := NewService(opener, testOptions(), zap.NewNop())
	store := cart.NewStore(cart.DefaultLimits())

	result, err := svc.Checkout(context.Background(), store, domain.BuyerInfo{})
	require.NoError(t, err)

	assert.Equal(t, domain.HandoffCleared, result.State)
	assert.Contains(t, result.Message, message.EmptyCartNotice)
	assert.Len(t, opener.links, 1)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	opts := testOptions()
	opts.AllowEmpty = false
	opener := &recordingOpener{}
	svc := NewService(opener, opts, zap.NewNop())

	result, err := svc.Checkout(context.Background(), cart.NewStore(cart.DefaultLimits()), domain.BuyerInfo{})

	assert.Nil(t, result)
	_, ok := err.(*errors.ErrEmptyCart)
	assert.True(t, ok)
	assert.Empty(t, opener.links)
}

func TestCheckout_WithRedirectOpener(t *testing.T) {
	svc := NewService(messaging.NewRedirectOpener(zap.NewNop()), testOptions(), zap.NewNop())
	store := filledStore(t)

	result, err := svc.Checkout(context.Background(), store, domain.BuyerInfo{})
	require.NoError(t, err)
	assert.Equal(t, domain.HandoffCleared, result.State)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store = filledStore(t)
	result, err = svc.Checkout(ctx, store, domain.BuyerInfo{})
	require.Error(t, err)
	assert.Equal(t, domain.HandoffFailed, result.State)
	assert.Equal(t, 1, store.Len())
}

func TestPreview_DoesNotTouchCart(t *testing.T) {
	opener := &recordingOpener{}
	svc := NewService(opener, testOptions(), zap.NewNop())
	store := filledStore(t)

	preview, err := svc.Preview(store, domain.BuyerInfo{})
	require.NoError(t, err)

	assert.Contains(t, preview.Message, "• 1) *Agenda Semanal* x2")
	assert.Equal(t, messaging.BuildLink("https://wa.me", "5493415550101", preview.Message), preview.Link)
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, opener.links)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(&recordingOpener{}, Options{}, zap.NewNop())
	assert.Equal(t, 1, svc.opts.Attempts)
	assert.Equal(t, "/", svc.opts.RedirectTo)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Messaging: config.MessagingConfig{BaseURL: "https://wa.me", Phone: "549"},
		Checkout:  config.CheckoutConfig{AllowEmpty: true, Attempts: 2, RedirectTo: "/gracias", RedirectDelay: time.Second},
	}

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, Options{
		BaseURL:       "https://wa.me",
		Recipient:     "549",
		AllowEmpty:    true,
		Attempts:      2,
		RedirectTo:    "/gracias",
		RedirectDelay: time.Second,
	}, opts)
}

func TestHandoff_RejectsInvalidTransition(t *testing.T) {
	h := newHandoff()

	err := h.moveTo(domain.HandoffCleared)
	require.Error(t, err)
	transition, ok := err.(*errors.ErrInvalidStateTransition)
	require.True(t, ok)
	assert.Equal(t, domain.HandoffIdle, transition.From)
	assert.Equal(t, domain.HandoffIdle, h.state)
	assert.Empty(t, h.history)
}
