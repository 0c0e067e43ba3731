package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	RestaurantID string         `json:"restaurantId" binding:"required"`
	Name         string         `json:"name" binding:"required"`
	Description  string         `json:"description"`
	PriceCents   int64          `json:"priceCents" binding:"required"`
	Category     string         `json:"category" binding:"required" gorm:"index"`
	Calories     int            `json:"calories"`
	AllergyInfo  string         `json:"allergyInformation"`
	ImageURL     string         `json:"imageUrl"`
	Ingredients  datatypes.JSON `json:"ingredients"`
}
