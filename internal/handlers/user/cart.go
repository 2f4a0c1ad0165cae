package user

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"elvara_back_end/internal/cart"
	"elvara_back_end/internal/catalog"
	"elvara_back_end/internal/database"
)

func cartStore() *cart.Store {
	return cart.NewStore(database.Redis)
}

func cartResponse(c *cart.Cart) gin.H {
	return gin.H{
		"items": c.Items(),
		"total": c.Total(),
		"count": c.Len(),
	}
}

// GetCart retourne le panier de la session.
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	ct, err := cartStore().Load(context.Background(), userID)
	if err != nil {
		log.Println("❌ Erreur lecture panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ct))
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Size      string `json:"size"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ctx := context.Background()
	product, err := catalog.NewStore(session).ProductByID(ctx, input.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur lecture produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}
	if !product.HasSize(input.Size) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Taille non proposée pour ce produit"})
		return
	}

	store := cartStore()
	ct, err := store.Load(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur lecture panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	ct.AddItem(*product, input.Size)

	if err := store.Save(ctx, userID, ct); err != nil {
		log.Println("❌ Erreur sauvegarde panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ct))
}

//
// ✏️ PUT /api/cart/quantity
//
func UpdateCartQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		CartItemID string `json:"cartItemId" binding:"required"`
		Quantity   int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := context.Background()
	store := cartStore()
	ct, err := store.Load(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur lecture panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// Quantité <= 0: la ligne est retirée, une ligne absente est un no-op.
	ct.UpdateQuantity(input.CartItemID, input.Quantity)

	if err := store.Save(ctx, userID, ct); err != nil {
		log.Println("❌ Erreur sauvegarde panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ct))
}

//
// ❌ DELETE /api/cart/item/:cartItemId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	ctx := context.Background()
	store := cartStore()
	ct, err := store.Load(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur lecture panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	ct.RemoveItem(c.Param("cartItemId"))

	if err := store.Save(ctx, userID, ct); err != nil {
		log.Println("❌ Erreur sauvegarde panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ct))
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	if err := cartStore().Clear(context.Background(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
