package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb), mr
}

func TestStoreLoadMissingKeyGivesEmptyCart(t *testing.T) {
	store, _ := testStore(t)

	c, err := store.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("un panier jamais sauvegardé devrait être vide")
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	c := New()
	p := testProduct(t, "chemise", 100, "M")
	c.AddItem(p, "M")
	c.AddItem(p, "M")

	if err := store.Save(ctx, "session-1", c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mr.Exists("cart:session-1") {
		t.Fatal("clé cart:session-1 absente de Redis")
	}

	loaded, err := store.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("lignes = %d, attendu 1", loaded.Len())
	}
	got := loaded.Items()[0]
	if got.Quantity != 2 || got.Price != 100 || got.Size != "M" {
		t.Errorf("ligne rechargée inattendue: %+v", got)
	}
	if loaded.Total() != 200 {
		t.Errorf("total = %.2f, attendu 200", loaded.Total())
	}
}

func TestStoreSaveSetsTTL(t *testing.T) {
	store, mr := testStore(t)

	if err := store.Save(context.Background(), "session-1", New()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := mr.TTL("cart:session-1"); got != TTL {
		t.Errorf("TTL = %v, attendu %v", got, TTL)
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	c := New()
	c.AddItem(testProduct(t, "chemise", 100, "M"), "M")
	if err := store.Save(ctx, "session-1", c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other, err := store.Load(ctx, "session-2")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !other.IsEmpty() {
		t.Error("le panier d'une autre session devrait être vide")
	}
}

func TestStoreClearRemovesKey(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	c := New()
	c.AddItem(testProduct(t, "chemise", 100, "M"), "M")
	if err := store.Save(ctx, "session-1", c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(ctx, "session-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if mr.Exists("cart:session-1") {
		t.Error("clé toujours présente après Clear")
	}
}
