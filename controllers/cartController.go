package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gladiator-burger/ordering-api/cart"
	"github.com/gladiator-burger/ordering-api/models"
	"github.com/gladiator-burger/ordering-api/utils"
	"gorm.io/gorm"
)

const (
	msgFailedToCreateCart = "Failed to create cart"
	msgCartNotFound       = "Cart not found"
	promoCode             = "SAVE5"
	promoPercent          = 5
)

type CartController struct {
	db *gorm.DB

	// Deployment tax rate; zero means tax is pending an address and
	// quotes must say so instead of silently charging zero tax.
	taxRate float64
}

func NewCartController(db *gorm.DB, taxRate float64) *CartController {
	return &CartController{db: db, taxRate: taxRate}
}

// findOrCreateCart returns the account-scoped cart, creating it on first
// use.
func (c *CartController) findOrCreateCart(userID int) (*models.Cart, error) {
	var stored models.Cart
	err := c.db.Where("user_id = ?", userID).Preload("Items").First(&stored).Error
	if err == nil {
		return &stored, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stored = models.Cart{UserID: userID}
	if err := c.db.Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetCart handles GET /cart.
func (c *CartController) GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	stored, err := c.findOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": stored})
}

// AddCartItem handles POST /cart/items. Adding an item already in the
// cart increments its quantity rather than creating a second line.
func (c *CartController) AddCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var item models.CartItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}
	if item.ItemID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing itemId")
		return
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	stored, err := c.findOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateCart)
		return
	}

	var existing models.CartItem
	err = c.db.Where("cart_id = ? AND item_id = ?", stored.ID, item.ItemID).First(&existing).Error
	if err == nil {
		existing.Quantity += item.Quantity
		if err := c.db.Save(&existing).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"id":      existing.ID,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	item.CartID = int(stored.ID)
	if err := c.db.Create(&item).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": item.Name + " added to cart",
		"id":      item.ID,
	})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem handles PATCH /cart/items/:itemId. A quantity of zero
// or less removes the line.
func (c *CartController) UpdateCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req updateQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	stored, err := c.findOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartNotFound)
		return
	}

	itemID := ctx.Param("itemId")
	if req.Quantity <= 0 {
		c.deleteLine(ctx, stored, itemID)
		return
	}

	result := c.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND item_id = ?", stored.ID, itemID).
		Update("quantity", req.Quantity)
	if result.Error != nil {
		log.Println("Update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item quantity updated"})
}

// RemoveCartItem handles DELETE /cart/items/:itemId.
func (c *CartController) RemoveCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	stored, err := c.findOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartNotFound)
		return
	}

	c.deleteLine(ctx, stored, ctx.Param("itemId"))
}

func (c *CartController) deleteLine(ctx *gin.Context, stored *models.Cart, itemID string) {
	result := c.db.Where("cart_id = ? AND item_id = ?", stored.ID, itemID).Delete(&models.CartItem{})
	if result.Error != nil {
		log.Println("Delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to remove cart item")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item removed"})
}

// ClearCart handles DELETE /cart.
func (c *CartController) ClearCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	stored, err := c.findOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartNotFound)
		return
	}

	if err := c.db.Where("cart_id = ?", stored.ID).Delete(&models.CartItem{}).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to clear cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}

type mergeCartRequest struct {
	Items []cart.Line `json:"items" binding:"required"`
}

// MergeCart handles POST /cart/merge, invoked once at login. Each guest
// line is folded into the account cart: matching item IDs sum their
// quantities, new items are inserted. A failed line is logged and
// skipped; the client clears its guest store regardless.
func (c *CartController) MergeCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req mergeCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	stored, err := c.findOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateCart)
		return
	}

	// Normalize the guest lines first: duplicate item IDs collapse and
	// non-positive quantities drop before any row is touched.
	guestLines := cart.FromLines(req.Items).Lines()

	var failed []string
	for _, line := range guestLines {
		if line.ItemID == "" {
			continue
		}

		var existing models.CartItem
		err := c.db.Where("cart_id = ? AND item_id = ?", stored.ID, line.ItemID).First(&existing).Error
		if err == nil {
			existing.Quantity += line.Quantity
			if err := c.db.Save(&existing).Error; err != nil {
				log.Printf("Error merging cart line %s: %v", line.ItemID, err)
				failed = append(failed, line.ItemID)
			}
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error merging cart line %s: %v", line.ItemID, err)
			failed = append(failed, line.ItemID)
			continue
		}

		item := models.CartItem{
			CartID:     int(stored.ID),
			ItemID:     line.ItemID,
			Name:       line.Name,
			PriceCents: line.PriceCents,
			Quantity:   line.Quantity,
			ImageURL:   line.ImageURL,
			Category:   line.Category,
		}
		if err := c.db.Create(&item).Error; err != nil {
			log.Printf("Error merging cart line %s: %v", line.ItemID, err)
			failed = append(failed, line.ItemID)
		}
	}

	response := gin.H{
		"message":        "Cart merged",
		"clearGuestCart": true,
	}
	if len(failed) > 0 {
		response["failed"] = failed
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}

type quoteRequest struct {
	PromoCode string `json:"promoCode"`
}

// Quote handles POST /cart/quote: totals for the stored cart, with the
// optional promo applied. Tax is never guessed; when the deployment has
// no rate configured, the response says the tax is pending.
func (c *CartController) Quote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	// An empty body is a quote with no promo code.
	var req quoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	stored, err := c.findOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartNotFound)
		return
	}

	lines := make([]utils.PricedLine, 0, len(stored.Items))
	for _, item := range stored.Items {
		lines = append(lines, utils.PricedLine{PriceCents: item.PriceCents, Quantity: item.Quantity})
	}

	subtotal := utils.SubtotalCents(lines)
	var discount int64
	if strings.EqualFold(req.PromoCode, promoCode) {
		discount = utils.DiscountCents(subtotal, promoPercent)
	} else if req.PromoCode != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid promo code")
		return
	}

	// Quote-time tax is always zero: either the deployment prices
	// tax-inclusive (receipts decompose it) or tax is pending an address.
	taxCents := int64(0)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"subtotalCents": subtotal,
		"discountCents": discount,
		"taxCents":      taxCents,
		"totalCents":    utils.TotalCents(subtotal, discount, taxCents),
		"taxPending":    c.taxRate == 0,
	})
}
