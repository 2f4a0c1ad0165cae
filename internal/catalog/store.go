package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"elvara_back_end/internal/models"
)

// ErrNotFound couvre aussi les identifiants mal formés: une référence
// produit invalide et une référence inexistante se traitent pareil.
var ErrNotFound = errors.New("produit introuvable")

// Store persiste le catalogue dans le keyspace products de ScyllaDB. La
// table products_by_category duplique les produits par catégorie pour les
// filtres d'égalité, sur le schéma du reste du catalogue.
type Store struct {
	session *gocql.Session
}

func NewStore(session *gocql.Session) *Store {
	return &Store{session: session}
}

const productColumns = `product_id, name, description, price, category, sizes, stock, image, created_at, updated_at`

// Create insère le produit et l'indexe par catégorie.
func (s *Store) Create(ctx context.Context, p *models.Product) error {
	p.ID = gocql.TimeUUID()
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now

	if err := s.session.Query(
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Sizes, p.Stock, p.Image, p.CreatedAt, p.UpdatedAt,
	).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("création produit: %w", err)
	}

	if p.Category != "" {
		if err := s.session.Query(
			`INSERT INTO products_by_category (category, product_id) VALUES (?, ?)`,
			p.Category, p.ID,
		).WithContext(ctx).Exec(); err != nil {
			// L'indexation par catégorie ne bloque pas la création.
			log.Printf("⚠️ Erreur indexation products_by_category: %v", err)
		}
	}
	return nil
}

// Get retourne le produit, ou ErrNotFound.
func (s *Store) Get(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	var p models.Product
	err := s.session.Query(
		`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id,
	).WithContext(ctx).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Sizes, &p.Stock, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture produit: %w", err)
	}
	return &p, nil
}

// ProductByID résout une référence produit transmise par le client.
func (s *Store) ProductByID(ctx context.Context, productID string) (*models.Product, error) {
	parsed, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.Get(ctx, gocql.UUID(parsed))
}

// List retourne tout le catalogue (scan complet, échelle boutique).
func (s *Store) List(ctx context.Context) ([]models.Product, error) {
	iter := s.session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()

	var all []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Sizes, &p.Stock, &p.Image, &p.CreatedAt, &p.UpdatedAt) {
		all = append(all, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture produits: %w", err)
	}
	return all, nil
}

// ListByCategory filtre par égalité stricte sur la catégorie, via la table
// de lookup.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	iter := s.session.Query(
		`SELECT product_id FROM products_by_category WHERE category = ?`, category,
	).WithContext(ctx).Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture catégorie: %w", err)
	}

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// Update réécrit le produit. L'appelant fournit l'entité complète; pas de
// résolution de conflit d'édition concurrente.
func (s *Store) Update(ctx context.Context, p *models.Product) error {
	existing, err := s.Get(ctx, p.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = &now

	if err := s.session.Query(
		`UPDATE products SET name = ?, description = ?, price = ?, category = ?, sizes = ?, stock = ?, image = ?, updated_at = ?
		 WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Category, p.Sizes, p.Stock, p.Image, p.UpdatedAt, p.ID,
	).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("mise à jour produit: %w", err)
	}

	if existing.Category != p.Category {
		if existing.Category != "" {
			s.session.Query(`DELETE FROM products_by_category WHERE category = ? AND product_id = ?`,
				existing.Category, p.ID).WithContext(ctx).Exec()
		}
		if p.Category != "" {
			s.session.Query(`INSERT INTO products_by_category (category, product_id) VALUES (?, ?)`,
				p.Category, p.ID).WithContext(ctx).Exec()
		}
	}
	return nil
}

// Delete supprime le produit et son entrée de lookup.
func (s *Store) Delete(ctx context.Context, id gocql.UUID) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.session.Query(`DELETE FROM products WHERE product_id = ?`, id).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("suppression produit: %w", err)
	}
	if existing.Category != "" {
		s.session.Query(`DELETE FROM products_by_category WHERE category = ? AND product_id = ?`,
			existing.Category, id).WithContext(ctx).Exec()
	}
	return nil
}
