package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-commerce/models"
	"go-commerce/services"
	"go-commerce/utils"
)

// CategoryController handles category-related requests
type CategoryController struct {
	Collection *mongo.Collection
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(db *mongo.Database) *CategoryController {
	return &CategoryController{Collection: db.Collection("categories")}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a new category (Admin only)
func (cc *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.InsertOne(ctx, category)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, category, "Category created successfully")
}

// GetCategories retrieves all categories
func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := cc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, categories, "Categories retrieved successfully")
}

// UpdateCategory updates a category (Admin only)
func (cc *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":        req.Name,
		"description": req.Description,
	}})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, services.ErrNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "Category updated successfully")
}

// DeleteCategory deletes a category (Admin only)
func (cc *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, services.ErrNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "Category deleted successfully")
}
