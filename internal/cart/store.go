package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"elvara_back_end/internal/models"
)

// TTL d'un panier dans Redis. Un panier inactif pendant 30 jours disparaît.
const TTL = 30 * 24 * time.Hour

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Store persiste les paniers dans Redis sous une clé fixe par session,
// encodés en JSON. Le stockage est un support de confort (le panier survit à
// un rechargement), pas une source de vérité: le moteur en mémoire reste
// l'autorité sur l'identité et la fusion des lignes.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Load recharge le panier de la session. Une clé absente donne un panier
// vide, jamais une erreur.
func (s *Store) Load(ctx context.Context, sessionID string) (*Cart, error) {
	data, err := s.rdb.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil || data == "" {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture panier: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("décodage panier: %w", err)
	}
	return FromItems(items), nil
}

// Save écrase le panier de la session et rafraîchit le TTL.
func (s *Store) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := json.Marshal(c.Items())
	if err != nil {
		return fmt.Errorf("encodage panier: %w", err)
	}
	return s.rdb.Set(ctx, cartKey(sessionID), data, TTL).Err()
}

// Clear supprime la clé de la session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, cartKey(sessionID)).Err()
}
