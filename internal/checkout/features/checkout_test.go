package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/internal/checkout"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/internal/message"
	"github.com/alpiedelaletra/storefront/internal/messaging"
)

type checkoutTestContext struct {
	store   *cart.Store
	opener  messaging.Opener
	message string
	result  *checkout.Result
	err     error
}

func (c *checkoutTestContext) reset() {
	c.store = nil
	c.opener = messaging.OpenerFunc(func(ctx context.Context, link string) error { return nil })
	c.message = ""
	c.result = nil
	c.err = nil
}

func (c *checkoutTestContext) anEmptyCart() error {
	c.store = cart.NewStore(cart.DefaultLimits())
	return nil
}

func (c *checkoutTestContext) theChatLinkOpens() error {
	c.opener = messaging.OpenerFunc(func(ctx context.Context, link string) error { return nil })
	return nil
}

func (c *checkoutTestContext) theChatLinkFailsToOpen() error {
	c.opener = messaging.OpenerFunc(func(ctx context.Context, link string) error {
		return errors.New("could not open link")
	})
	return nil
}

func (c *checkoutTestContext) iAddOfAtInSize(qty int, name string, price int, size string) error {
	_, err := c.store.AddItem(cart.ItemInput{
		Product: domain.ProductRef{
			ID:        strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			Name:      name,
			BasePrice: decimal.NewFromInt(int64(price)),
		},
		Quantity:     qty,
		Price:        decimal.NewFromInt(int64(price)),
		SelectedSize: domain.Size(size),
	})
	return err
}

func (c *checkoutTestContext) entry(n int) (cart.Item, error) {
	items := c.store.Items()
	if n < 1 || n > len(items) {
		return cart.Item{}, fmt.Errorf("cart has %d entries, no entry %d", len(items), n)
	}
	return items[n-1], nil
}

func (c *checkoutTestContext) iSetTheQuantityOfEntryTo(n, qty int) error {
	item, err := c.entry(n)
	if err != nil {
		return err
	}
	if _, ok := c.store.UpdateQuantity(item.Key, qty); !ok {
		return fmt.Errorf("entry %d disappeared", n)
	}
	return nil
}

func (c *checkoutTestContext) iFormatTheOrderMessage() error {
	items, total := c.store.Snapshot()
	c.message = message.FormatOrder(items, total, domain.BuyerInfo{})
	return nil
}

func (c *checkoutTestContext) iCheckOut() error {
	svc := checkout.NewService(c.opener, checkout.Options{
		BaseURL:    "https://wa.me",
		Recipient:  "5493410000000",
		AllowEmpty: true,
	}, zap.NewNop())
	c.result, c.err = svc.Checkout(context.Background(), c.store, domain.BuyerInfo{})
	return nil
}

func (c *checkoutTestContext) theMessageContains(text string) error {
	if !strings.Contains(c.message, text) {
		return fmt.Errorf("expected message to contain %q, got:\n%s", text, c.message)
	}
	return nil
}

func (c *checkoutTestContext) theMessageHasNoItemLines() error {
	if strings.Contains(c.message, "• 1)") {
		return errors.New("expected no item lines")
	}
	return nil
}

func (c *checkoutTestContext) theCartTotalIs(total int) error {
	got := c.store.TotalPrice()
	if !got.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected total %d, got %s", total, got)
	}
	return nil
}

func (c *checkoutTestContext) theCartHasEntries(n int) error {
	if c.store.Len() != n {
		return fmt.Errorf("expected %d entries, got %d", n, c.store.Len())
	}
	return nil
}

func (c *checkoutTestContext) entryHasQuantity(n, qty int) error {
	item, err := c.entry(n)
	if err != nil {
		return err
	}
	if item.Quantity != qty {
		return fmt.Errorf("expected quantity %d, got %d", qty, item.Quantity)
	}
	return nil
}

func (c *checkoutTestContext) theHandoffStateIs(state string) error {
	if c.result == nil {
		return fmt.Errorf("no checkout result, error: %v", c.err)
	}
	if string(c.result.State) != state {
		return fmt.Errorf("expected state %s, got %s", state, c.result.State)
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailed() error {
	if c.err == nil {
		return errors.New("expected checkout to fail but it succeeded")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the chat link opens$`, tc.theChatLinkOpens)
	ctx.Step(`^the chat link fails to open$`, tc.theChatLinkFailsToOpen)

	// When steps
	ctx.Step(`^I add (\d+) of "([^"]*)" at (\d+) in size "([^"]*)"$`, tc.iAddOfAtInSize)
	ctx.Step(`^I set the quantity of entry (\d+) to (-?\d+)$`, tc.iSetTheQuantityOfEntryTo)
	ctx.Step(`^I format the order message$`, tc.iFormatTheOrderMessage)
	ctx.Step(`^I check out$`, tc.iCheckOut)

	// Then steps
	ctx.Step(`^the message contains "([^"]*)"$`, tc.theMessageContains)
	ctx.Step(`^the message has no item lines$`, tc.theMessageHasNoItemLines)
	ctx.Step(`^the cart total is (\d+)$`, tc.theCartTotalIs)
	ctx.Step(`^the cart has (\d+) entries$`, tc.theCartHasEntries)
	ctx.Step(`^entry (\d+) has quantity (\d+)$`, tc.entryHasQuantity)
	ctx.Step(`^the hand-off state is "([^"]*)"$`, tc.theHandoffStateIs)
	ctx.Step(`^the checkout failed$`, tc.theCheckoutFailed)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
