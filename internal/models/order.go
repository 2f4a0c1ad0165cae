package models

import (
	"time"

	"github.com/gocql/gocql"
)

// OrderItem est un instantané de ligne au moment de l'achat. Les changements
// ultérieurs du catalogue (prix, suppression) ne le modifient jamais.
type OrderItem struct {
	ProductID string  `cql:"product_id" json:"productId"`
	Name      string  `cql:"name" json:"name"`
	Price     float64 `cql:"price" json:"price"`
	Quantity  int     `cql:"quantity" json:"quantity"`
	Size      string  `cql:"size" json:"size,omitempty"`
}

type Order struct {
	ID              gocql.UUID  `json:"id"`
	UserID          string      `json:"user_id,omitempty"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	ShippingAddress string      `json:"shippingAddress"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
}
