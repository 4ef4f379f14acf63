package model

// Room is a rentable room from the catalog.  Prices are nightly rates in
// whole-ish CZK; the column is DECIMAL but the application treats it as a
// plain number.  Rooms are never hard-deleted, only re-priced.
//
// Fields:
//  ID    – primary key identifier.
//  Name  – display name ("Pokoj 1", "Apartmán", ...).
//  Price – nightly price, non-negative.
type Room struct {
	ID    uint64  `json:"id"`    // rooms.id
	Name  string  `json:"name"`  // rooms.name
	Price float64 `json:"price"` // rooms.price
}
