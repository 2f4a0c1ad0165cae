package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"elvara_back_end/internal/models"
	"elvara_back_end/internal/orders"
)

// ValidationError est une erreur de saisie imputable au client (panier vide,
// champ de contact manquant, quantité invalide). Elle se traduit en rejet
// 4xx avec un message lisible, jamais avalée en silence.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Catalog est la vue du catalogue dont le traducteur a besoin: résoudre une
// référence produit vers son état courant.
type Catalog interface {
	ProductByID(ctx context.Context, productID string) (*models.Product, error)
}

// Request est le corps de POST /api/orders. Les articles ne portent ni prix
// ni total: tout montant soumis par le client est réputé non fiable.
type Request struct {
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	ShippingAddress string        `json:"shippingAddress"`
	Items           []RequestItem `json:"items"`
}

type RequestItem struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Translator convertit un instantané de panier et des coordonnées de
// livraison en commande prête à persister. Il ne vide pas le panier et ne
// persiste rien lui-même: ces deux responsabilités restent à l'appelant.
type Translator struct {
	catalog Catalog
}

func NewTranslator(catalog Catalog) *Translator {
	return &Translator{catalog: catalog}
}

// Translate valide la requête et construit la commande en statut pending.
// Le total est recalculé depuis les prix du catalogue au moment de la
// soumission, somme de prix × quantité; en cas d'erreur rien n'est créé.
func (t *Translator) Translate(ctx context.Context, userID string, req Request) (*models.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	address := strings.TrimSpace(req.ShippingAddress)

	if name == "" {
		return nil, validationErr("le nom du client est obligatoire")
	}
	if phone == "" {
		return nil, validationErr("le téléphone du client est obligatoire")
	}
	if address == "" {
		return nil, validationErr("l'adresse de livraison est obligatoire")
	}
	if len(req.Items) == 0 {
		return nil, validationErr("le panier est vide")
	}

	var items []models.OrderItem
	total := 0.0
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, validationErr("quantité invalide pour le produit %s", line.ProductID)
		}

		p, err := t.catalog.ProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.HasSize(line.Size) {
			return nil, validationErr("taille %q non proposée pour %s", line.Size, p.Name)
		}

		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
		})
		total += p.Price * float64(line.Quantity)
	}

	return &models.Order{
		ID:              gocql.TimeUUID(),
		UserID:          userID,
		CustomerName:    name,
		CustomerPhone:   phone,
		ShippingAddress: address,
		TotalAmount:     total,
		Status:          string(orders.StatusPending),
		Items:           items,
		CreatedAt:       time.Now(),
	}, nil
}
