// Package session stores the token-keyed user sessions. There is no global
// session singleton: the store is constructed once and injected, and an
// Accessor binds it to one token for the cart engine.
package session

import (
	"context"
	"errors"

	"github.com/fitquality/storefront/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type Store interface {
	Save(ctx context.Context, token string, identity domain.Identity) error
	Get(ctx context.Context, token string) (*domain.Identity, error)
	Delete(ctx context.Context, token string) error
}

// Accessor resolves the purchaser behind one fixed token. It satisfies the
// cart engine's SessionAccessor.
type Accessor struct {
	store Store
	token string
}

func NewAccessor(store Store, token string) *Accessor {
	return &Accessor{store: store, token: token}
}

func (a *Accessor) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	return a.store.Get(ctx, a.token)
}
