package model

// Game groups the purchasable denominations of one game brand. Games are
// rebuilt from the upstream price list on every fetch and never persisted.
type Game struct {
	ID            string         `json:"id"`   // slug of Name
	Name          string         `json:"name"` // raw brand from the price list
	Denominations []Denomination `json:"denominations"`
}

// Denomination is one purchasable quantity tier of in-game currency.
// Prices are IDR minor units. SellerPrice = Price + configured markup,
// so SellerPrice >= Price always holds.
type Denomination struct {
	ID          string `json:"id"`   // vendor SKU code
	Name        string `json:"name"` // product label with the brand prefix stripped
	Price       int64  `json:"price"`
	SellerPrice int64  `json:"seller_price"`
}
