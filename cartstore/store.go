package cartstore

import (
	"errors"
	"log"

	"printshop/models"
)

// KeyValueStore is one tier of the cart persistence chain
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

var ErrNotFound = errors.New("cart not found")

// Repository persists carts across a ranked list of interchangeable tiers.
// Loads take the first tier that answers; the remote tier is authoritative
// when reachable and the local tier is the availability floor. Saves hit the
// local tiers synchronously and the remote tier in the background.
type Repository struct {
	Remote KeyValueStore // best-effort enhancement, may be nil
	Local  KeyValueStore // durable floor
	Memory KeyValueStore // session-lifetime only, never durable
}

func NewRepository(remote, local, memory KeyValueStore) *Repository {
	return &Repository{Remote: remote, Local: local, Memory: memory}
}

func (r *Repository) ranked() []KeyValueStore {
	tiers := []KeyValueStore{}
	if r.Remote != nil {
		tiers = append(tiers, r.Remote)
	}
	if r.Local != nil {
		tiers = append(tiers, r.Local)
	}
	if r.Memory != nil {
		tiers = append(tiers, r.Memory)
	}
	return tiers
}

// Load returns the session's cart from the highest-ranked tier that has it.
// Whatever the source, lines are re-validated before entering cart state; a
// session with no stored cart gets an empty one, never an error.
func (r *Repository) Load(s SessionHandle) *models.Cart {
	for _, tier := range r.ranked() {
		data, err := tier.Get(string(s))
		if err != nil {
			continue
		}
		cart, err := models.DecodeCart(data)
		if err != nil {
			log.Printf("Discarding unparsable cart for %s: %v", s, err)
			continue
		}
		return cart
	}
	return &models.Cart{}
}

// Save writes the cart to every tier. The remote write runs in the
// background; its error is logged and deliberately discarded so a broken
// remote store can never block a cart mutation.
func (r *Repository) Save(s SessionHandle, cart *models.Cart) error {
	data, err := cart.Encode()
	if err != nil {
		return err
	}
	if r.Memory != nil {
		if err := r.Memory.Set(string(s), data); err != nil {
			log.Printf("Memory cart store error for %s: %v", s, err)
		}
	}
	var localErr error
	if r.Local != nil {
		localErr = r.Local.Set(string(s), data)
	}
	if r.Remote != nil {
		go func() {
			if err := r.Remote.Set(string(s), data); err != nil {
				// Deliberate: remote sync is fire-and-forget
				log.Printf("Remote cart store error for %s: %v", s, err)
			}
		}()
	}
	return localErr
}

// Clear removes the session's cart from every tier
func (r *Repository) Clear(s SessionHandle) {
	for _, tier := range r.ranked() {
		if err := tier.Remove(string(s)); err != nil {
			log.Printf("Cart store remove error for %s: %v", s, err)
		}
	}
}
