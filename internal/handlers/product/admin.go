package product

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"elvara_back_end/internal/catalog"
	"elvara_back_end/internal/models"
	"elvara_back_end/internal/services"
)

// parseSizes accepte les tailles en JSON stringifié ("[\"S\",\"M\"]") ou en
// liste séparée par des virgules, comme les envoie la console admin.
func parseSizes(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var sizes []string
	if err := json.Unmarshal([]byte(raw), &sizes); err == nil {
		return sizes
	}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

//
// ➕ POST /api/admin/products (multipart: champs + image)
//
func CreateProduct(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	priceRaw := c.PostForm("price")
	if name == "" || priceRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nom et le prix sont obligatoires"})
		return
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}

	stock := 0
	if raw := c.PostForm("stock"); raw != "" {
		if stock, err = strconv.Atoi(raw); err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock invalide"})
			return
		}
	}

	p := models.Product{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		Category:    strings.TrimSpace(c.PostForm("category")),
		Sizes:       parseSizes(c.PostForm("sizes")),
		Stock:       stock,
	}

	store, err := catalogStore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ctx := context.Background()
	if err := store.Create(ctx, &p); err != nil {
		log.Println("❌ Erreur création produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// 🖼️ Image vers MinIO, une fois l'identifiant produit connu.
	if file, err := c.FormFile("image"); err == nil {
		url, err := services.UploadProductImage(ctx, p.ID, file)
		if err != nil {
			log.Println("⚠️ Erreur upload image:", err)
		} else {
			p.Image = url
			if err := store.Update(ctx, &p); err != nil {
				log.Println("⚠️ Erreur enregistrement URL image:", err)
			}
		}
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	invalidateProductsCache(ctx)
	c.JSON(http.StatusCreated, p)
}

//
// ✏️ PUT /api/admin/products/:id
//
func UpdateProduct(c *gin.Context) {
	store, err := catalogStore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ctx := context.Background()
	existing, err := store.ProductByID(ctx, c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	p := *existing
	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		p.Name = name
	}
	if desc := c.PostForm("description"); desc != "" {
		p.Description = desc
	}
	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
			return
		}
		p.Price = price
	}
	if raw := c.PostForm("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock invalide"})
			return
		}
		p.Stock = stock
	}
	if category := c.PostForm("category"); category != "" {
		p.Category = strings.TrimSpace(category)
	}
	if raw := c.PostForm("sizes"); raw != "" {
		p.Sizes = parseSizes(raw)
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := services.UploadProductImage(ctx, p.ID, file)
		if err != nil {
			log.Println("⚠️ Erreur upload image:", err)
		} else {
			p.Image = url
		}
	}

	if err := store.Update(ctx, &p); err != nil {
		log.Println("❌ Erreur mise à jour produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	go services.IndexProduct(p)

	invalidateProductsCache(ctx)
	c.JSON(http.StatusOK, p)
}

//
// 🗑️ DELETE /api/admin/products/:id
//
func DeleteProduct(c *gin.Context) {
	store, err := catalogStore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ctx := context.Background()
	existing, err := store.ProductByID(ctx, c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	if err := store.Delete(ctx, existing.ID); err != nil {
		log.Println("❌ Erreur suppression produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	if err := services.RemoveProductImage(ctx, existing.Image); err != nil {
		log.Println("⚠️ Erreur suppression image:", err)
	}
	go services.RemoveProductFromIndex(existing.ID.String())

	invalidateProductsCache(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
