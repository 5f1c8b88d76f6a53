package marketplace

import (
	"net/http"

	"skillytics-api/database"
	"skillytics-api/internal/domain/market"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListItems returns approved marketplace items with the caller's ownership
// flags.
func ListItems(c *gin.Context) {
	userID := c.GetUint("user_id")

	q := database.DB.Where("status = ?", market.ItemStatusApproved)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if itemType := c.Query("type"); itemType != "" {
		q = q.Where("type = ?", itemType)
	}
	if search := c.Query("q"); search != "" {
		q = q.Where("title ILIKE ?", "%"+search+"%")
	}

	var items []market.Item
	if err := q.Order("total_sales DESC").Limit(100).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load marketplace"})
		return
	}

	owned := map[string]bool{}
	if userID != 0 {
		var purchases []market.Purchase
		database.DB.Where("user_id = ?", userID).Find(&purchases)
		for _, p := range purchases {
			owned[p.ItemID] = true
		}
	}

	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"item":        item,
			"purchased":   owned[item.ID],
			"credit_cost": market.CreditCost(item.Price),
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": out})
}

// GetItem returns one item; the full content only for buyers and the
// creator.
func GetItem(c *gin.Context) {
	userID := c.GetUint("user_id")

	var item market.Item
	if err := database.DB.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	isCreator := false
	var creator market.Creator
	if database.DB.Where("user_id = ?", userID).First(&creator).Error == nil {
		isCreator = creator.ID == item.CreatorID
	}

	if item.Status != market.ItemStatusApproved && !isCreator {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	purchased := false
	if userID != 0 {
		var p market.Purchase
		purchased = database.DB.Where("user_id = ? AND item_id = ?", userID, item.ID).First(&p).Error == nil
	}

	resp := gin.H{
		"item":        item,
		"purchased":   purchased,
		"credit_cost": market.CreditCost(item.Price),
	}
	if purchased || isCreator || item.IsFree {
		resp["content"] = item.Content
	}

	c.JSON(http.StatusOK, resp)
}

// ManageMarketplace dispatches POST /api/marketplace actions.
func ManageMarketplace(c *gin.Context) {
	var body struct {
		Action string `json:"action" binding:"required"`

		ItemID        string `json:"item_id"`
		PaymentMethod string `json:"payment_method"`

		Title          string  `json:"title"`
		Description    string  `json:"description"`
		Type           string  `json:"type"`
		Category       string  `json:"category"`
		Tags           string  `json:"tags"`
		Price          float64 `json:"price"`
		Content        string  `json:"content"`
		PreviewContent *string `json:"preview_content"`
		FileURLs       string  `json:"file_urls"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid action"})
		return
	}

	switch body.Action {
	case "become_creator":
		becomeCreator(c)
	case "create_item":
		createItem(c, createItemInput{
			Title: body.Title, Description: body.Description, Type: body.Type,
			Category: body.Category, Tags: body.Tags, Price: body.Price,
			Content: body.Content, PreviewContent: body.PreviewContent, FileURLs: body.FileURLs,
		})
	case "submit_for_review":
		submitForReview(c, body.ItemID)
	case "archive":
		archiveItem(c, body.ItemID)
	case "purchase":
		purchaseItem(c, body.ItemID, body.PaymentMethod)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
	}
}

func becomeCreator(c *gin.Context) {
	userID := c.GetUint("user_id")

	var existing market.Creator
	if database.DB.Where("user_id = ?", userID).First(&existing).Error == nil {
		c.JSON(http.StatusOK, gin.H{"creator": existing})
		return
	}

	creator := market.Creator{UserID: userID}
	if err := database.DB.Create(&creator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create creator profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"creator": creator})
}

type createItemInput struct {
	Title          string
	Description    string
	Type           string
	Category       string
	Tags           string
	Price          float64
	Content        string
	PreviewContent *string
	FileURLs       string
}

func createItem(c *gin.Context, in createItemInput) {
	userID := c.GetUint("user_id")

	var creator market.Creator
	if err := database.DB.Where("user_id = ?", userID).First(&creator).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Become a creator first"})
		return
	}

	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if in.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
		return
	}

	item := market.Item{
		ID:             uuid.NewString(),
		CreatorID:      creator.ID,
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		Category:       in.Category,
		Tags:           in.Tags,
		Price:          in.Price,
		Currency:       "USD",
		IsFree:         in.Price == 0,
		Content:        in.Content,
		PreviewContent: in.PreviewContent,
		FileURLs:       in.FileURLs,
		Status:         market.ItemStatusDraft,
		RevenueShare:   market.DefaultRevenueShare,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func submitForReview(c *gin.Context, itemID string) {
	userID := c.GetUint("user_id")

	item, ok := ownItem(c, userID, itemID)
	if !ok {
		return
	}
	if item.Status != market.ItemStatusDraft && item.Status != market.ItemStatusRejected {
		c.JSON(http.StatusConflict, gin.H{"error": "Only draft or rejected items can be submitted"})
		return
	}

	if err := database.DB.Model(&market.Item{}).Where("id = ?", item.ID).
		Update("status", market.ItemStatusPendingReview).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item submitted for review"})
}

func archiveItem(c *gin.Context, itemID string) {
	userID := c.GetUint("user_id")

	item, ok := ownItem(c, userID, itemID)
	if !ok {
		return
	}
	if item.Status == market.ItemStatusArchived {
		c.JSON(http.StatusOK, gin.H{"message": "Item already archived"})
		return
	}
	if item.Status == market.ItemStatusPendingReview {
		c.JSON(http.StatusConflict, gin.H{"error": "Items in review cannot be archived"})
		return
	}

	if err := database.DB.Model(&market.Item{}).Where("id = ?", item.ID).
		Update("status", market.ItemStatusArchived).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item archived"})
}

// UpdateItem lets the creator edit an item while it is not live.
func UpdateItem(c *gin.Context) {
	userID := c.GetUint("user_id")

	item, ok := ownItem(c, userID, c.Param("id"))
	if !ok {
		return
	}
	if item.Status == market.ItemStatusApproved || item.Status == market.ItemStatusPendingReview {
		c.JSON(http.StatusConflict, gin.H{"error": "Live or in-review items cannot be edited; archive first"})
		return
	}

	var body struct {
		Title          *string  `json:"title"`
		Description    *string  `json:"description"`
		Category       *string  `json:"category"`
		Tags           *string  `json:"tags"`
		Price          *float64 `json:"price"`
		Content        *string  `json:"content"`
		PreviewContent *string  `json:"preview_content"`
		FileURLs       *string  `json:"file_urls"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.Category != nil {
		updates["category"] = *body.Category
	}
	if body.Tags != nil {
		updates["tags"] = *body.Tags
	}
	if body.Price != nil {
		if *body.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}
		updates["price"] = *body.Price
		updates["is_free"] = *body.Price == 0
	}
	if body.Content != nil {
		updates["content"] = *body.Content
	}
	if body.PreviewContent != nil {
		updates["preview_content"] = *body.PreviewContent
	}
	if body.FileURLs != nil {
		updates["file_urls"] = *body.FileURLs
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&market.Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item updated"})
}

// GetCreatorDashboard returns the caller's creator profile, items, and
// payout state.
func GetCreatorDashboard(c *gin.Context) {
	userID := c.GetUint("user_id")

	var creator market.Creator
	if err := database.DB.Where("user_id = ?", userID).First(&creator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No creator profile"})
		return
	}

	var items []market.Item
	database.DB.Where("creator_id = ?", creator.ID).Order("created_at DESC").Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"creator": creator,
		"items":   items,
	})
}

func ownItem(c *gin.Context, userID uint, itemID string) (*market.Item, bool) {
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return nil, false
	}

	var creator market.Creator
	if err := database.DB.Where("user_id = ?", userID).First(&creator).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No creator profile"})
		return nil, false
	}

	var item market.Item
	if err := database.DB.Where("id = ? AND creator_id = ?", itemID, creator.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return nil, false
	}
	return &item, true
}
