package cart

import (
	"strings"

	"elvara_back_end/internal/models"
)

// ItemKey identifie une ligne de panier. Deux ajouts du même produit dans la
// même taille fusionnent sur une seule ligne; une autre taille est une ligne
// distincte. La comparaison se fait par valeur, jamais sur un format de
// chaîne accidentel.
type ItemKey struct {
	ProductID string
	Size      string
}

const sizeSeparator = "::"

// ItemID encode la clé sous forme canonique pour le transport
// ("<productID>" sans taille, "<productID>::<taille>" sinon).
func (k ItemKey) ItemID() string {
	if k.Size == "" {
		return k.ProductID
	}
	return k.ProductID + sizeSeparator + k.Size
}

// ParseItemID décode un identifiant de ligne reçu du client.
func ParseItemID(id string) ItemKey {
	if i := strings.Index(id, sizeSeparator); i >= 0 {
		return ItemKey{ProductID: id[:i], Size: id[i+len(sizeSeparator):]}
	}
	return ItemKey{ProductID: id}
}

func keyOf(item models.CartItem) ItemKey {
	return ItemKey{ProductID: item.ProductID, Size: item.Size}
}

// Cart est la collection d'articles d'une session. L'ordre d'insertion est
// conservé pour l'affichage. Le type n'est pas sûr pour un usage concurrent:
// chaque session possède son propre panier.
type Cart struct {
	items []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// FromItems reconstruit un panier rechargé depuis le stockage durable. Les
// doublons de clé sont fusionnés et les quantités invalides écartées, pour
// que le schéma d'identité reste le même qu'en mémoire.
func FromItems(items []models.CartItem) *Cart {
	c := New()
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		key := keyOf(item)
		if line := c.find(key); line != nil {
			line.Quantity += item.Quantity
			continue
		}
		item.CartItemID = key.ItemID()
		c.items = append(c.items, item)
	}
	return c
}

func (c *Cart) find(key ItemKey) *models.CartItem {
	for i := range c.items {
		if keyOf(c.items[i]) == key {
			return &c.items[i]
		}
	}
	return nil
}

// AddItem ajoute une unité du produit dans la taille demandée. Si la ligne
// existe déjà, seule la quantité est incrémentée: le prix et l'image restent
// ceux figés au premier ajout.
func (c *Cart) AddItem(p models.Product, size string) models.CartItem {
	key := ItemKey{ProductID: p.ID.String(), Size: size}
	if line := c.find(key); line != nil {
		line.Quantity++
		return *line
	}
	item := models.CartItem{
		CartItemID: key.ItemID(),
		ProductID:  p.ID.String(),
		Name:       p.Name,
		Price:      p.Price,
		Image:      p.Image,
		Size:       size,
		Quantity:   1,
	}
	c.items = append(c.items, item)
	return item
}

// RemoveItem supprime la ligne. Une ligne absente n'est pas une erreur.
func (c *Cart) RemoveItem(itemID string) {
	key := ParseItemID(itemID)
	for i := range c.items {
		if keyOf(c.items[i]) == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity fixe la quantité absolue de la ligne. Une quantité <= 0
// équivaut à RemoveItem. Ligne absente: no-op.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}
	if line := c.find(ParseItemID(itemID)); line != nil {
		line.Quantity = quantity
	}
}

// Clear vide le panier inconditionnellement.
func (c *Cart) Clear() {
	c.items = nil
}

// Total recalcule la somme prix × quantité à chaque appel. La valeur n'est
// jamais mise en cache entre deux mutations.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Items retourne une copie des lignes, dans l'ordre d'insertion.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Len() int {
	return len(c.items)
}
