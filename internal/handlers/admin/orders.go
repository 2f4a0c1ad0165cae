package admin

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"elvara_back_end/internal/database"
	"elvara_back_end/internal/models"
	"elvara_back_end/internal/orders"
	"elvara_back_end/internal/utils"
)

// orderStore est la surface de persistance de la console admin, remplaçable
// dans les tests.
type orderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id gocql.UUID) (*models.Order, error)
	SetStatus(ctx context.Context, id gocql.UUID, next orders.Status) (*models.Order, error)
}

var openOrders = func() (orderStore, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return orders.NewStore(session), nil
}

func parseOrderID(c *gin.Context) (gocql.UUID, bool) {
	parsed, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return gocql.UUID{}, false
	}
	return gocql.UUID(parsed), true
}

//
// 📋 GET /api/orders — toutes les commandes, récentes d'abord
//
func ListOrders(c *gin.Context) {
	store, err := openOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	list, err := store.List(context.Background())
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list})
}

//
// 🔍 GET /api/orders/:id
//
func GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	store, err := openOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	o, err := store.Get(context.Background(), id)
	if errors.Is(err, orders.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur lecture commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}

	c.JSON(http.StatusOK, o)
}

//
// ✏️ PUT /api/orders/:id/status
//
func UpdateOrderStatus(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	next, err := orders.ParseStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, err := openOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	o, err := store.SetStatus(context.Background(), id, next)
	if err != nil {
		var tErr *orders.ErrInvalidTransition
		switch {
		case errors.Is(err, orders.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		case errors.As(err, &tErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": tErr.Error()})
		default:
			log.Println("❌ Erreur mise à jour statut:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		}
		return
	}

	log.Printf("✅ Commande %s: statut → %s", o.ID.String(), o.Status)
	c.JSON(http.StatusOK, o)
}

//
// 🧾 GET /api/orders/:id/invoice — facture PDF (paiement à la livraison)
//
func OrderInvoice(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	store, err := openOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	o, err := store.Get(context.Background(), id)
	if errors.Is(err, orders.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}

	qr, err := utils.GenerateOrderQR(*o)
	if err != nil {
		log.Println("⚠️ Erreur génération QR:", err)
	}

	pdf, err := utils.RenderInvoicePDF(c.Request.Context(), utils.BuildInvoiceHTML(*o, qr))
	if err != nil {
		log.Println("❌ Erreur génération PDF:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération facture"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=facture_elvara_"+o.ID.String()+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
