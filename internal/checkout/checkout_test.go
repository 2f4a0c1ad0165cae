package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/gocql/gocql"

	"elvara_back_end/internal/catalog"
	"elvara_back_end/internal/models"
	"elvara_back_end/internal/orders"
)

// fakeCatalog sert les produits depuis une map, comme le ferait le keyspace
// products.
type fakeCatalog struct {
	products map[string]*models.Product
}

func (f *fakeCatalog) ProductByID(_ context.Context, productID string) (*models.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func newFakeCatalog(t *testing.T) (*fakeCatalog, string, string) {
	t.Helper()
	shirtID := gocql.TimeUUID().String()
	beltID := gocql.TimeUUID().String()
	return &fakeCatalog{products: map[string]*models.Product{
		shirtID: {Name: "Chemise lin", Price: 100, Sizes: []string{"M", "L"}},
		beltID:  {Name: "Ceinture cuir", Price: 50},
	}}, shirtID, beltID
}

func validRequest(shirtID, beltID string) Request {
	return Request{
		CustomerName:    "Yasmine A.",
		CustomerPhone:   "+212600000000",
		ShippingAddress: "12 rue des Orangers, Casablanca",
		Items: []RequestItem{
			{ProductID: shirtID, Size: "M", Quantity: 2},
			{ProductID: beltID, Quantity: 1},
		},
	}
}

func TestTranslateBuildsPendingOrderWithRecomputedTotal(t *testing.T) {
	cat, shirtID, beltID := newFakeCatalog(t)
	tr := NewTranslator(cat)

	o, err := tr.Translate(context.Background(), "user-1", validRequest(shirtID, beltID))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	if o.Status != string(orders.StatusPending) {
		t.Errorf("statut = %q, attendu pending", o.Status)
	}
	if o.TotalAmount != 250 {
		t.Errorf("total = %.2f, attendu 250 (100×2 + 50×1)", o.TotalAmount)
	}
	if o.UserID != "user-1" {
		t.Errorf("userID = %q", o.UserID)
	}
	if len(o.Items) != 2 {
		t.Fatalf("articles = %d, attendu 2", len(o.Items))
	}
	if o.Items[0].Price != 100 || o.Items[0].Quantity != 2 || o.Items[0].Size != "M" {
		t.Errorf("première ligne inattendue: %+v", o.Items[0])
	}
	if o.ID.String() == (gocql.UUID{}).String() {
		t.Error("identifiant de commande non généré")
	}
	if o.CreatedAt.IsZero() {
		t.Error("date de création absente")
	}
}

func TestTranslateIgnoresClientPrices(t *testing.T) {
	// Le corps de la requête ne transporte aucun prix; le total vient du
	// catalogue, pas du client. On vérifie qu'une mutation ultérieure du
	// catalogue ne modifie pas la commande déjà construite.
	cat, shirtID, beltID := newFakeCatalog(t)
	tr := NewTranslator(cat)

	o, err := tr.Translate(context.Background(), "user-1", validRequest(shirtID, beltID))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	cat.products[shirtID].Price = 999

	if o.TotalAmount != 250 {
		t.Errorf("total = %.2f, l'instantané ne doit pas suivre le catalogue", o.TotalAmount)
	}
	if o.Items[0].Price != 100 {
		t.Errorf("prix figé = %.2f, attendu 100", o.Items[0].Price)
	}
}

func TestTranslateValidation(t *testing.T) {
	cat, shirtID, beltID := newFakeCatalog(t)
	tr := NewTranslator(cat)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"nom manquant", func(r *Request) { r.CustomerName = "  " }},
		{"téléphone manquant", func(r *Request) { r.CustomerPhone = "" }},
		{"adresse manquante", func(r *Request) { r.ShippingAddress = "" }},
		{"panier vide", func(r *Request) { r.Items = nil }},
		{"quantité nulle", func(r *Request) { r.Items[0].Quantity = 0 }},
		{"quantité négative", func(r *Request) { r.Items[0].Quantity = -2 }},
		{"taille non proposée", func(r *Request) { r.Items[0].Size = "XS" }},
		{"taille sur produit sans tailles", func(r *Request) { r.Items[1].Size = "M" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(shirtID, beltID)
			tt.mutate(&req)

			o, err := tr.Translate(context.Background(), "user-1", req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("erreur = %v, attendu ValidationError", err)
			}
			if o != nil {
				t.Error("aucune commande ne doit être construite en cas de rejet")
			}
		})
	}
}

func TestTranslateUnknownProductPropagatesNotFound(t *testing.T) {
	cat, shirtID, beltID := newFakeCatalog(t)
	tr := NewTranslator(cat)

	req := validRequest(shirtID, beltID)
	req.Items[0].ProductID = gocql.TimeUUID().String()

	o, err := tr.Translate(context.Background(), "user-1", req)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("erreur = %v, attendu catalog.ErrNotFound", err)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Error("un produit inconnu n'est pas une erreur de validation")
	}
	if o != nil {
		t.Error("aucune commande ne doit être construite")
	}
}

func TestTranslateTrimsContactFields(t *testing.T) {
	cat, shirtID, beltID := newFakeCatalog(t)
	tr := NewTranslator(cat)

	req := validRequest(shirtID, beltID)
	req.CustomerName = "  Yasmine A.  "
	req.ShippingAddress = "\t12 rue des Orangers, Casablanca\n"

	o, err := tr.Translate(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if o.CustomerName != "Yasmine A." {
		t.Errorf("nom = %q", o.CustomerName)
	}
	if o.ShippingAddress != "12 rue des Orangers, Casablanca" {
		t.Errorf("adresse = %q", o.ShippingAddress)
	}
}
