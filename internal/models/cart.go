package models

// CartLine is one item/quantity pair in a user's cart. Carts are transient:
// they live in Redis keyed by user, never in Postgres.
type CartLine struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}
