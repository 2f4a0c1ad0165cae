package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/gocql/gocql"

	"elvara_back_end/internal/models"
)

// ErrNotFound est renvoyée pour un identifiant de commande inconnu.
var ErrNotFound = errors.New("commande introuvable")

// ErrInvalidTransition signale une arête refusée par la liste blanche du
// workflow.
type ErrInvalidTransition struct {
	From Status
	To   Status
}

func (e *ErrInvalidTransition) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("la commande est dans l'état terminal %q", e.From)
	}
	return fmt.Sprintf("transition %q → %q non autorisée", e.From, e.To)
}

// Store persiste les commandes dans le keyspace orders de ScyllaDB. Les
// lignes sont embarquées dans la ligne de commande (UDT figé): une commande
// et son instantané sont écrits en un seul INSERT, donc atomiquement.
type Store struct {
	session *gocql.Session
}

func NewStore(session *gocql.Session) *Store {
	return &Store{session: session}
}

// Create insère la commande, puis référence son id dans orders_by_user pour
// la vue "mes commandes". La table de lookup ne duplique pas le statut: elle
// ne peut donc jamais être périmée.
func (s *Store) Create(ctx context.Context, o *models.Order) error {
	if err := s.session.Query(
		`INSERT INTO orders (order_id, user_id, customer_name, customer_phone, shipping_address, total_amount, status, items, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.CustomerName, o.CustomerPhone, o.ShippingAddress,
		o.TotalAmount, o.Status, o.Items, o.CreatedAt,
	).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("insertion commande: %w", err)
	}

	if o.UserID != "" {
		if err := s.session.Query(
			`INSERT INTO orders_by_user (user_id, created_at, order_id) VALUES (?, ?, ?)`,
			o.UserID, o.CreatedAt, o.ID,
		).WithContext(ctx).Exec(); err != nil {
			// La commande existe déjà; une entrée de lookup manquante ne doit
			// pas faire échouer le checkout.
			log.Printf("⚠️ Erreur indexation orders_by_user pour %s: %v", o.ID.String(), err)
		}
	}
	return nil
}

// Get retourne la commande complète, ou ErrNotFound.
func (s *Store) Get(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	var o models.Order
	err := s.session.Query(
		`SELECT order_id, user_id, customer_name, customer_phone, shipping_address, total_amount, status, items, created_at
		 FROM orders WHERE order_id = ?`, id,
	).WithContext(ctx).Scan(
		&o.ID, &o.UserID, &o.CustomerName, &o.CustomerPhone, &o.ShippingAddress,
		&o.TotalAmount, &o.Status, &o.Items, &o.CreatedAt,
	)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture commande: %w", err)
	}
	return &o, nil
}

// List retourne toutes les commandes, les plus récentes d'abord. Un scan
// complet suffit à l'échelle d'une boutique.
func (s *Store) List(ctx context.Context) ([]models.Order, error) {
	iter := s.session.Query(
		`SELECT order_id, user_id, customer_name, customer_phone, shipping_address, total_amount, status, items, created_at
		 FROM orders`,
	).WithContext(ctx).Iter()

	var all []models.Order
	var o models.Order
	for iter.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerPhone, &o.ShippingAddress,
		&o.TotalAmount, &o.Status, &o.Items, &o.CreatedAt) {
		all = append(all, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture commandes: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// ListByUser retourne les commandes d'un client, les plus récentes d'abord.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	iter := s.session.Query(
		`SELECT order_id FROM orders_by_user WHERE user_id = ?`, userID,
	).WithContext(ctx).Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture commandes utilisateur: %w", err)
	}

	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		o, err := s.Get(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// SetStatus applique une transition du workflow. La commande est relue, la
// transition validée contre la liste blanche, puis écrite. Pas de verrou ni
// de version: deux opérateurs simultanés s'écrasent en dernier-écrivain-
// gagnant, compromis assumé à cette échelle.
func (s *Store) SetStatus(ctx context.Context, id gocql.UUID, next Status) (*models.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current := Status(o.Status)
	if !current.CanTransitionTo(next) {
		return nil, &ErrInvalidTransition{From: current, To: next}
	}

	if err := s.session.Query(
		`UPDATE orders SET status = ? WHERE order_id = ?`, next, id,
	).WithContext(ctx).Exec(); err != nil {
		return nil, fmt.Errorf("mise à jour statut: %w", err)
	}

	o.Status = string(next)
	return o, nil
}
