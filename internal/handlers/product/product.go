package product

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"elvara_back_end/internal/catalog"
	"elvara_back_end/internal/database"
	"elvara_back_end/internal/models"
	"elvara_back_end/internal/services"
)

func catalogStore() (*catalog.Store, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(session), nil
}

func productsCacheKey(category string) string {
	if category == "" {
		return "products:all"
	}
	return "products:category:" + category
}

// invalidateProductsCache purge les listes mises en cache après toute
// écriture catalogue.
func invalidateProductsCache(ctx context.Context) {
	keys, err := database.Redis.Keys(ctx, "products:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	database.Redis.Del(ctx, keys...)
}

//
// 🛍️ GET /api/products?category=...
//
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()
	category := c.Query("category")
	cacheKey := productsCacheKey(category)

	// ✅ Vérifie le cache Redis
	if val, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	store, err := catalogStore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var products []models.Product
	if category != "" {
		products, err = store.ListByCategory(ctx, category)
	} else {
		products, err = store.List(ctx)
	}
	if err != nil {
		log.Println("❌ Erreur lecture produits:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, cacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, products)
}

//
// 🔍 GET /api/products/:id
//
func GetProduct(c *gin.Context) {
	store, err := catalogStore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p, err := store.ProductByID(context.Background(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur lecture produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	c.JSON(http.StatusOK, p)
}

//
// 🔎 GET /api/products/search?q=...
//
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		log.Println("⚠️ Recherche Elastic indisponible:", err)
		c.JSON(http.StatusOK, []map[string]interface{}{})
		return
	}

	c.JSON(http.StatusOK, results)
}
