// Package checkout hands a cart off to the shop's chat line and empties it
// once the hand-off went through.
package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/internal/config"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/internal/message"
	"github.com/alpiedelaletra/storefront/internal/messaging"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

// Options configures a Service
type Options struct {
	BaseURL       string
	Recipient     string
	AllowEmpty    bool
	Attempts      int
	RedirectTo    string
	RedirectDelay time.Duration
}

// OptionsFromConfig collects the checkout settings from the loaded config
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:       cfg.Messaging.BaseURL,
		Recipient:     cfg.Messaging.Phone,
		AllowEmpty:    cfg.Checkout.AllowEmpty,
		Attempts:      cfg.Checkout.Attempts,
		RedirectTo:    cfg.Checkout.RedirectTo,
		RedirectDelay: cfg.Checkout.RedirectDelay,
	}
}

// Result describes a finished hand-off
type Result struct {
	State         domain.HandoffState `json:"state"`
	Link          string              `json:"link"`
	Message       string              `json:"message"`
	ItemCount     int                 `json:"item_count"`
	Total         decimal.Decimal     `json:"total"`
	RedirectTo    string              `json:"redirect_to"`
	RedirectDelay time.Duration       `json:"-"`
	History       []Transition        `json:"history"`
}

// Preview is the hand-off text and link for a cart, without opening anything
type Preview struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type Service struct {
	opener messaging.Opener
	opts   Options
	logger *zap.Logger
}

// NewService creates a new checkout service
func NewService(opener messaging.Opener, opts Options, logger *zap.Logger) *Service {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.RedirectTo == "" {
		opts.RedirectTo = "/"
	}
	return &Service{
		opener: opener,
		opts:   opts,
		logger: logger,
	}
}

// Preview builds the message and link the checkout would send
func (s *Service) Preview(store *cart.Store, buyer domain.BuyerInfo) (*Preview, error) {
	items, total := store.Snapshot()
	if err := message.CheckTotal(items, total); err != nil {
		return nil, err
	}
	text := message.FormatOrder(items, total, buyer)
	return &Preview{
		Message: text,
		Link:    messaging.BuildLink(s.opts.BaseURL, s.opts.Recipient, text),
	}, nil
}

// Checkout formats the cart, opens the hand-off link and, only when the link
// was opened, takes the entries that went into the message out of the cart.
// Anything added while the link was being opened stays. On failure the cart is
// left as it was and the returned Result carries the Failed state next to the
// error.
func (s *Service) Checkout(ctx context.Context, store *cart.Store, buyer domain.BuyerInfo) (*Result, error) {
	items, total := store.Snapshot()
	if len(items) == 0 && !s.opts.AllowEmpty {
		return nil, &errors.ErrEmptyCart{}
	}

	h := newHandoff()
	result := &Result{
		ItemCount:     len(items),
		Total:         total,
		RedirectTo:    s.opts.RedirectTo,
		RedirectDelay: s.opts.RedirectDelay,
	}
	finish := func() *Result {
		result.State = h.state
		result.History = h.history
		return result
	}

	var lastErr error
	for attempt := 1; attempt <= s.opts.Attempts; attempt++ {
		if err := h.moveTo(domain.HandoffFormatting); err != nil {
			return finish(), err
		}

		if err := message.CheckTotal(items, total); err != nil {
			s.logger.Error("Cart total does not match its items", zap.Error(err))
			if terr := h.moveTo(domain.HandoffFailed); terr != nil {
				return finish(), terr
			}
			return finish(), err
		}
		result.Message = message.FormatOrder(items, total, buyer)
		result.Link = messaging.BuildLink(s.opts.BaseURL, s.opts.Recipient, result.Message)

		if err := h.moveTo(domain.HandoffPending); err != nil {
			return finish(), err
		}

		lastErr = s.opener.Open(ctx, result.Link)
		if lastErr == nil {
			break
		}

		s.logger.Warn("Hand-off attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("items", len(items)),
			zap.Error(lastErr),
		)
		if err := h.moveTo(domain.HandoffFailed); err != nil {
			return finish(), err
		}
		if ctx.Err() != nil {
			break
		}
	}

	if lastErr != nil {
		s.logger.Error("Failed to hand off cart", zap.Error(lastErr))
		return finish(), &errors.ErrHandoffFailed{Link: result.Link, Cause: lastErr}
	}

	store.Discard(items)
	if err := h.moveTo(domain.HandoffCleared); err != nil {
		return finish(), err
	}

	s.logger.Info("Cart handed off",
		zap.Int("items", len(items)),
		zap.String("total", total.String()),
	)
	return finish(), nil
}
