package order

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"elvara_back_end/internal/cart"
	"elvara_back_end/internal/catalog"
	"elvara_back_end/internal/checkout"
	"elvara_back_end/internal/database"
	"elvara_back_end/internal/models"
	"elvara_back_end/internal/orders"
	"elvara_back_end/internal/utils"
)

// LiveOrdersChannel est le canal Redis sur lequel chaque nouvelle commande
// est publiée pour le fil temps réel de la console admin.
const LiveOrdersChannel = "orders:new"

// orderStore est la surface de persistance dont les handlers ont besoin,
// remplaçable dans les tests.
type orderStore interface {
	Create(ctx context.Context, o *models.Order) error
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

var openCatalog = func() (checkout.Catalog, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(session), nil
}

var openOrders = func() (orderStore, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return orders.NewStore(session), nil
}

//
// 🟢 POST /api/orders — checkout
//
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cat, err := openCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ctx := context.Background()
	translator := checkout.NewTranslator(cat)

	o, err := translator.Translate(ctx, userID, req)
	if err != nil {
		var vErr *checkout.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		default:
			log.Println("❌ Erreur checkout:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		}
		return
	}

	store, err := openOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if err := store.Create(ctx, o); err != nil {
		log.Println("❌ Erreur persistance commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// La commande est enregistrée: le flux de checkout vide le panier de la
	// session. Best effort, le traducteur n'y touche jamais.
	if err := cart.NewStore(database.Redis).Clear(ctx, userID); err != nil {
		log.Println("⚠️ Erreur vidage panier après checkout:", err)
	}

	// Fil temps réel de la console admin.
	if data, err := json.Marshal(o); err == nil {
		database.Redis.Publish(ctx, LiveOrdersChannel, data)
	}

	// Confirmation par e-mail, sans bloquer la réponse.
	if email := c.GetString("email"); email != "" {
		order := *o
		go func() {
			if err := utils.SendOrderConfirmationEmail(email, order); err != nil {
				log.Println("⚠️ Erreur envoi e-mail de confirmation:", err)
			}
		}()
	}

	log.Printf("✅ Commande %s créée (%.2f MAD)", o.ID.String(), o.TotalAmount)
	c.JSON(http.StatusCreated, o)
}

//
// 📦 GET /api/orders/my
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	store, err := openOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	list, err := store.ListByUser(context.Background(), userID)
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list})
}
