/*
Package catalog implements the sellable travel offers priced by the
pricing engine: hotel stays and hotel+attraction bundles.

PURPOSE:
  An offer owns its configurable information - product composition,
  price rules, customer choice, validity - and exposes price calculation
  methods that take external price data as a read-only parameter. The
  offer never stores runtime prices as state.

KEY CONCEPTS IN THIS FILE (offer.go):
  - RoomInfo / TicketItem: the priced units
  - HotelProduct / AttractionProduct: unit groups with stay/quantity rules
  - HotelOffer: rooms priced over the minimum occupancy range
  - HybridOffer: hotel group plus attraction group, priced independently
    and summed

SEE ALSO:
  - validity.go: check-in availability rules
  - pricing/rule.go: the reduction and aggregation primitives used here
*/
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/pricing"
)

// =============================================================================
// PRODUCT UNITS
// =============================================================================

// RoomInfo identifies one bookable room within a hotel product.
type RoomInfo struct {
	RoomNo   pricing.UnitID
	RoomType string
	Capacity int
}

// TicketItem identifies one attraction ticket product.
type TicketItem struct {
	ProductNumber pricing.UnitID
	TicketCode    string
	ThemeParks    []string
	Name          string
	Description   string
}

// QuantityRange bounds how many tickets a bundle may include.
type QuantityRange struct {
	Min int
	Max int
}

// =============================================================================
// PRODUCT GROUPS
// =============================================================================

// HotelProduct groups interchangeable rooms under one stay-length rule.
type HotelProduct struct {
	AdvanceBookingDays int
	Nights             pricing.NumberOfNights
	Rooms              []RoomInfo
}

// MinOccupancyRange derives the date range that must be priced for a stay
// beginning at checkIn.
func (p HotelProduct) MinOccupancyRange(checkIn pricing.Day) (pricing.DateRange, error) {
	return p.Nights.MinOccupancyRange(checkIn)
}

// RoomNos lists the unit ids of every room in the group.
func (p HotelProduct) RoomNos() []pricing.UnitID {
	nos := make([]pricing.UnitID, len(p.Rooms))
	for i, r := range p.Rooms {
		nos[i] = r.RoomNo
	}
	return nos
}

// AttractionProduct groups tickets under one quantity rule. Tickets are
// priced at the visit day only; there is no date expansion.
type AttractionProduct struct {
	ValidQuantity QuantityRange
	Tickets       []TicketItem
}

// TicketNos lists the unit ids of every ticket in the group.
func (p AttractionProduct) TicketNos() []pricing.UnitID {
	nos := make([]pricing.UnitID, len(p.Tickets))
	for i, t := range p.Tickets {
		nos[i] = t.ProductNumber
	}
	return nos
}

// ProductGroups is the composition of a hybrid bundle.
type ProductGroups struct {
	Hotel      HotelProduct
	Attraction AttractionProduct
}

// =============================================================================
// HOTEL OFFER
// =============================================================================

// HotelOffer is a sellable hotel stay: a room group, its price rules, the
// customer-choice policy, and validity.
type HotelOffer struct {
	OfferNo        string
	Name           string
	Products       HotelProduct
	CustomerChoice pricing.CustomerChoice
	PriceRules     []pricing.PriceRule
	Validity       Validity
}

// RoomNos lists the unit ids this offer needs prices for.
func (o *HotelOffer) RoomNos() []pricing.UnitID { return o.Products.RoomNos() }

// MinPrice computes the cheapest total for the minimum stay beginning at
// checkIn: per rule, per day, each room's minimum price is rule-adjusted
// and reduced via the customer choice, day prices are summed, and the
// cheapest rule wins. Validity gates the check-in day first.
func (o *HotelOffer) MinPrice(checkIn pricing.Day, bookedAt pricing.Timestamp, source pricing.PriceSource) (decimal.Decimal, error) {
	if err := o.Validity.CheckInAvailable(checkIn, bookedAt); err != nil {
		return decimal.Zero, err
	}

	stay, err := o.Products.MinOccupancyRange(checkIn)
	if err != nil {
		return decimal.Zero, err
	}

	return pricing.MinOverRules(o.PriceRules, func(rule pricing.PriceRule) (decimal.Decimal, error) {
		return pricing.AggregateStay(rule, stay, o.RoomNos(), o.CustomerChoice, source)
	})
}

// BasePriceFunc adapts the offer into the composer's base-price input.
func (o *HotelOffer) BasePriceFunc(bookedAt pricing.Timestamp, source pricing.PriceSource) pricing.BasePriceFunc {
	return func(checkIn pricing.Day) (decimal.Decimal, error) {
		return o.MinPrice(checkIn, bookedAt, source)
	}
}

// =============================================================================
// HYBRID OFFER
// =============================================================================

// HybridOffer bundles a hotel stay with attraction tickets. The groups are
// priced independently - the hotel over its occupancy range, the tickets
// at the check-in day only - and their minima summed.
type HybridOffer struct {
	OfferNo        string
	Name           string
	Groups         ProductGroups
	CustomerChoice pricing.CustomerChoice
	PriceRules     []pricing.PriceRule
	Validity       Validity
}

// RoomNos lists the hotel unit ids of the bundle.
func (o *HybridOffer) RoomNos() []pricing.UnitID { return o.Groups.Hotel.RoomNos() }

// TicketNos lists the attraction unit ids of the bundle.
func (o *HybridOffer) TicketNos() []pricing.UnitID { return o.Groups.Attraction.TicketNos() }

// MinPrice computes the bundle total for a stay beginning at checkIn.
func (o *HybridOffer) MinPrice(checkIn pricing.Day, bookedAt pricing.Timestamp, source pricing.PriceSource) (decimal.Decimal, error) {
	if err := o.Validity.CheckInAvailable(checkIn, bookedAt); err != nil {
		return decimal.Zero, err
	}

	stay, err := o.Groups.Hotel.MinOccupancyRange(checkIn)
	if err != nil {
		return decimal.Zero, err
	}

	hotelPrice, err := pricing.MinOverRules(o.PriceRules, func(rule pricing.PriceRule) (decimal.Decimal, error) {
		return pricing.AggregateStay(rule, stay, o.RoomNos(), o.CustomerChoice, source)
	})
	if err != nil {
		return decimal.Zero, err
	}

	// Tickets are day entry products: priced at the check-in day, no stay
	// expansion.
	visitDay := pricing.DateRange{Start: checkIn, End: checkIn}
	attractionPrice, err := pricing.MinOverRules(o.PriceRules, func(rule pricing.PriceRule) (decimal.Decimal, error) {
		return pricing.AggregateStay(rule, visitDay, o.TicketNos(), o.CustomerChoice, source)
	})
	if err != nil {
		return decimal.Zero, err
	}

	return hotelPrice.Add(attractionPrice), nil
}

// BasePriceFunc adapts the bundle into the composer's base-price input.
func (o *HybridOffer) BasePriceFunc(bookedAt pricing.Timestamp, source pricing.PriceSource) pricing.BasePriceFunc {
	return func(checkIn pricing.Day) (decimal.Decimal, error) {
		return o.MinPrice(checkIn, bookedAt, source)
	}
}

// =============================================================================
// OFFER STORE
// =============================================================================

// Offer is the common view the API layer needs over both offer kinds.
type Offer interface {
	Number() string
	Title() string
	BasePriceFunc(bookedAt pricing.Timestamp, source pricing.PriceSource) pricing.BasePriceFunc
}

func (o *HotelOffer) Number() string  { return o.OfferNo }
func (o *HotelOffer) Title() string   { return o.Name }
func (o *HybridOffer) Number() string { return o.OfferNo }
func (o *HybridOffer) Title() string  { return o.Name }
