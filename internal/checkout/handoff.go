package checkout

import (
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

// Transition records one state change of a hand-off
type Transition struct {
	From domain.HandoffState `json:"from"`
	To   domain.HandoffState `json:"to"`
}

type handoff struct {
	state   domain.HandoffState
	history []Transition
}

func newHandoff() *handoff {
	return &handoff{state: domain.HandoffIdle}
}

func (h *handoff) moveTo(next domain.HandoffState) error {
	if !h.state.CanTransitionTo(next) {
		return &errors.ErrInvalidStateTransition{
			From: h.state,
			To:   next,
		}
	}
	h.history = append(h.history, Transition{From: h.state, To: next})
	h.state = next
	return nil
}
