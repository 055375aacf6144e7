package catalog

import (
	"context"
)

// =============================================================================
// OFFER STORE
// =============================================================================

// OfferStore loads and manages sellable offers by offer number.
type OfferStore interface {
	// OfferByNo returns one offer or pricing.ErrOfferNotFound.
	OfferByNo(ctx context.Context, offerNo string) (Offer, error)

	// ListOffers returns every stored offer.
	ListOffers(ctx context.Context) ([]Offer, error)

	SaveOffer(ctx context.Context, o Offer) error
	DeleteOffer(ctx context.Context, offerNo string) error
}
