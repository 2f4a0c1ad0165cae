package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	Category    string     `json:"category" db:"category"`
	Sizes       []string   `json:"sizes" db:"sizes"`
	Stock       int        `json:"stock" db:"stock"`
	Image       string     `json:"image" db:"image"`
	CreatedAt   *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// HasSize indique si la taille demandée est proposée pour ce produit.
// Un produit sans tailles (taille unique) n'accepte que la taille vide.
func (p Product) HasSize(size string) bool {
	if size == "" {
		return len(p.Sizes) == 0
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
