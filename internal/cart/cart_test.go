package cart

import (
	"testing"

	"github.com/gocql/gocql"

	"elvara_back_end/internal/models"
)

func testProduct(t *testing.T, name string, price float64, sizes ...string) models.Product {
	t.Helper()
	return models.Product{
		ID:    gocql.TimeUUID(),
		Name:  name,
		Price: price,
		Sizes: sizes,
		Image: "http://minio/elvara/products/" + name + ".jpg",
	}
}

func TestAddItemMergesSameProductAndSize(t *testing.T) {
	c := New()
	p := testProduct(t, "chemise", 100, "M", "L")

	c.AddItem(p, "M")
	c.AddItem(p, "M")

	if c.Len() != 1 {
		t.Fatalf("lignes = %d, attendu 1", c.Len())
	}
	items := c.Items()
	if items[0].Quantity != 2 {
		t.Errorf("quantité = %d, attendu 2", items[0].Quantity)
	}
}

func TestAddItemDistinguishesSizes(t *testing.T) {
	c := New()
	p := testProduct(t, "chemise", 100, "M", "L")

	c.AddItem(p, "M")
	c.AddItem(p, "L")

	if c.Len() != 2 {
		t.Fatalf("lignes = %d, attendu 2", c.Len())
	}
}

func TestAddItemKeepsPriceSnapshot(t *testing.T) {
	c := New()
	p := testProduct(t, "chemise", 100, "M")

	c.AddItem(p, "M")
	p.Price = 180 // le catalogue change après l'ajout
	c.AddItem(p, "M")

	items := c.Items()
	if items[0].Price != 100 {
		t.Errorf("prix = %.2f, attendu le prix figé 100", items[0].Price)
	}
	if items[0].Quantity != 2 {
		t.Errorf("quantité = %d, attendu 2", items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	p := testProduct(t, "chemise", 100, "M")
	item := c.AddItem(p, "M")

	c.UpdateQuantity(item.CartItemID, 0)

	if !c.IsEmpty() {
		t.Error("le panier devrait être vide après une quantité à 0")
	}
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	c := New()
	p := testProduct(t, "chemise", 100, "M")
	item := c.AddItem(p, "M")

	c.UpdateQuantity(item.CartItemID, -3)

	if !c.IsEmpty() {
		t.Error("le panier devrait être vide après une quantité négative")
	}
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	c := New()
	p := testProduct(t, "chemise", 100, "M")
	item := c.AddItem(p, "M")

	c.UpdateQuantity(item.CartItemID, 5)

	if got := c.Items()[0].Quantity; got != 5 {
		t.Errorf("quantité = %d, attendu 5", got)
	}
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	c := New()
	p := testProduct(t, "chemise", 100, "M")
	c.AddItem(p, "M")

	c.RemoveItem("inconnu::XL")
	c.UpdateQuantity("inconnu::XL", 3)

	if c.Len() != 1 {
		t.Errorf("lignes = %d, attendu 1", c.Len())
	}
}

func TestTotalIsRecomputedAfterEveryMutation(t *testing.T) {
	c := New()
	a := testProduct(t, "chemise", 100, "M")
	b := testProduct(t, "ceinture", 50)

	c.AddItem(a, "M")
	c.AddItem(a, "M")
	c.AddItem(b, "")

	if got := c.Total(); got != 250 {
		t.Fatalf("total = %.2f, attendu 250", got)
	}

	c.UpdateQuantity(ItemKey{ProductID: a.ID.String(), Size: "M"}.ItemID(), 1)
	if got := c.Total(); got != 150 {
		t.Errorf("total après mutation = %.2f, attendu 150", got)
	}

	c.Clear()
	if got := c.Total(); got != 0 {
		t.Errorf("total après clear = %.2f, attendu 0", got)
	}
}

func TestItemKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		key  ItemKey
		id   string
	}{
		{"sans taille", ItemKey{ProductID: "p1"}, "p1"},
		{"avec taille", ItemKey{ProductID: "p1", Size: "M"}, "p1::M"},
		{"taille multi-caractères", ItemKey{ProductID: "p1", Size: "XXL"}, "p1::XXL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.ItemID(); got != tt.id {
				t.Errorf("ItemID() = %q, attendu %q", got, tt.id)
			}
			if got := ParseItemID(tt.id); got != tt.key {
				t.Errorf("ParseItemID(%q) = %+v, attendu %+v", tt.id, got, tt.key)
			}
		})
	}
}

func TestFromItemsMergesDuplicateKeys(t *testing.T) {
	// Un stockage corrompu ou un ancien format peut contenir deux lignes de
	// même clé: le rechargement doit les fusionner.
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Name: "chemise", Price: 100, Quantity: 1},
		{ProductID: "p1", Size: "M", Name: "chemise", Price: 100, Quantity: 2},
		{ProductID: "p2", Name: "ceinture", Price: 50, Quantity: 0}, // invalide, écartée
	}

	c := FromItems(items)

	if c.Len() != 1 {
		t.Fatalf("lignes = %d, attendu 1", c.Len())
	}
	got := c.Items()[0]
	if got.Quantity != 3 {
		t.Errorf("quantité = %d, attendu 3", got.Quantity)
	}
	if got.CartItemID != "p1::M" {
		t.Errorf("cartItemId = %q, attendu %q", got.CartItemID, "p1::M")
	}
}

func TestInsertionOrderIsPreserved(t *testing.T) {
	c := New()
	a := testProduct(t, "chemise", 100, "M")
	b := testProduct(t, "ceinture", 50)

	c.AddItem(a, "M")
	c.AddItem(b, "")
	c.AddItem(a, "M") // fusion, ne change pas l'ordre

	items := c.Items()
	if items[0].Name != "chemise" || items[1].Name != "ceinture" {
		t.Errorf("ordre inattendu: %q puis %q", items[0].Name, items[1].Name)
	}
}
