package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"go-commerce/middleware"
	"go-commerce/models"
	"go-commerce/services"
	"go-commerce/utils"
)

var validate = validator.New()

// userIDFromRequest resolves the authenticated user's id from the JWT claims
// attached by the auth middleware. Services never read the request context
// themselves; the id is passed down explicitly.
func userIDFromRequest(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// UserController handles user-related requests
type UserController struct {
	Collection   *mongo.Collection
	EmailService *utils.EmailService
	Logger       zerolog.Logger
}

// NewUserController creates a new UserController with EmailService
func NewUserController(db *mongo.Database, emailService *utils.EmailService, logger zerolog.Logger) *UserController {
	return &UserController{
		Collection:   db.Collection("users"),
		EmailService: emailService,
		Logger:       logger,
	}
}

type registerRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Address  models.Address `json:"address"`
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
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

	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if count > 0 {
		utils.RespondError(w, fmt.Errorf("%w: user already exists", services.ErrInvalidInput))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	user := models.User{
		Name:              req.Name,
		Email:             req.Email,
		Password:          string(hashedPassword),
		Address:           req.Address,
		Role:              models.RoleUser,
		IsVerified:        false,
		VerificationToken: uuid.NewString(),
		CreatedAt:         time.Now(),
	}

	result, err := uc.Collection.InsertOne(ctx, user)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	if err := uc.EmailService.SendVerificationEmail(user.Email, user.VerificationToken); err != nil {
		uc.Logger.Warn().Err(err).Str("email", user.Email).Msg("verification email failed")
	}

	utils.RespondJSON(w, http.StatusCreated, nil,
		"User registered successfully. Please check your email to verify your account.")
}

// VerifyEmail handles email verification
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.RespondError(w, fmt.Errorf("%w: verification token missing", services.ErrInvalidInput))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"verification_token": token}).Decode(&user)
	if err != nil {
		utils.RespondError(w, fmt.Errorf("%w: user not found or already verified", services.ErrInvalidInput))
		return
	}

	_, err = uc.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"is_verified":        true,
			"verification_token": "",
		},
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "Email verified successfully. You can now log in.")
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}
	if err := validate.Struct(creds); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	if !user.IsVerified {
		http.Error(w, "Email not verified", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		http.Error(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"token": token}, "Login successful")
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		utils.RespondError(w, services.ErrNotFound)
		return
	}

	user.Password = ""
	user.VerificationToken = ""
	utils.RespondJSON(w, http.StatusOK, user, "Profile retrieved successfully")
}

// ForgotPassword issues a one-time reset token and mails a reset link. Only
// the sha256 digest of the token is stored.
func (uc *UserController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondError(w, fmt.Errorf("%w: email missing", services.ErrInvalidInput))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		utils.RespondError(w, services.ErrNotFound)
		return
	}

	rawToken := uuid.NewString()
	_, err = uc.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"forgot_password_token":  utils.HashToken(rawToken),
			"forgot_password_expiry": time.Now().Add(10 * time.Minute),
		},
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	resetLink := fmt.Sprintf("http://%s/reset-password/%s", r.Host, rawToken)
	if err := uc.EmailService.SendPasswordResetEmail(user.Email, resetLink); err != nil {
		uc.Logger.Warn().Err(err).Str("email", user.Email).Msg("reset email failed")
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "A password reset link has been sent to your email.")
}

// ResetPassword consumes a reset token and sets the new password.
func (uc *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req struct {
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
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

	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{
		"forgot_password_token":  utils.HashToken(token),
		"forgot_password_expiry": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		utils.RespondError(w, fmt.Errorf("%w: invalid reset link", services.ErrNotFound))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	_, err = uc.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{"password": string(hashedPassword)},
		"$unset": bson.M{
			"forgot_password_token":  "",
			"forgot_password_expiry": "",
		},
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, nil, "Password changed successfully!")
}
