package controllers

import (
	"net/http"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/services"

	"github.com/gin-gonic/gin"
)

type AvoidedFoodController struct {
	Svc *services.AvoidedFoodService
}

func NewAvoidedFoodController(svc *services.AvoidedFoodService) *AvoidedFoodController {
	return &AvoidedFoodController{Svc: svc}
}

// GET /preferences/avoided-foods
func (fc *AvoidedFoodController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	foods, err := fc.Svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avoided_foods": foods})
}

// POST /preferences/avoided-foods
func (fc *AvoidedFoodController) Add(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Food string `json:"food" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := fc.Svc.Add(c.Request.Context(), userID, body.Food)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, food)
}

// DELETE /preferences/avoided-foods/:food
func (fc *AvoidedFoodController) Remove(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := fc.Svc.Remove(c.Request.Context(), userID, c.Param("food")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
