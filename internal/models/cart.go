package models

// CartItem est une ligne de panier. Le prix est figé au moment de l'ajout
// et n'est jamais resynchronisé avec le catalogue.
type CartItem struct {
	CartItemID string  `json:"cartItemId"`
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	Size       string  `json:"size,omitempty"`
	Quantity   int     `json:"quantity"`
}
