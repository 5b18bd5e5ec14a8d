package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/auth"
	"github.com/pulizieapp/cleaning-planner/middlewares"
	"github.com/pulizieapp/cleaning-planner/models"
	"github.com/pulizieapp/cleaning-planner/utils"
)

type UserController struct {
	DB       *gorm.DB
	Sessions auth.SessionStore
}

func NewUserController(db *gorm.DB, sessions auth.SessionStore) *UserController {
	return &UserController{DB: db, Sessions: sessions}
}

// Register creates a new account.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	account := models.Account{
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := uc.DB.Create(&account).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email already registered"))
		return
	}

	utils.InfoLogger.Printf("New account registered: %s", account.Email)

	utils.RespondJSON(c, http.StatusCreated, "Account registered", gin.H{
		"account_id": account.ID,
	})
}

// Login verifies credentials and sets the session cookie.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var account models.Account
	if err := uc.DB.Where("email = ?", input.Email).First(&account).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	sid, err := uc.Sessions.Create(c.Request.Context(), account.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.SetCookie(middlewares.SessionCookie, sid, int(auth.DefaultTTL.Seconds()), "/", "", false, true)

	utils.InfoLogger.Printf("Login successful for account: %s", account.Email)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"account_id": account.ID,
		"email":      account.Email,
	})
}

// Logout deletes the current session and clears the cookie.
func (uc *UserController) Logout(c *gin.Context) {
	if sid := c.GetString(middlewares.SessionCookie); sid != "" {
		if err := uc.Sessions.Delete(c.Request.Context(), sid); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)

	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile returns the authenticated account.
func (uc *UserController) GetProfile(c *gin.Context) {
	accountID, ok := middlewares.AccountID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("account id not found in context"))
		return
	}

	var account models.Account
	if err := uc.DB.First(&account, accountID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":    account.ID,
		"email": account.Email,
	})
}

// DeleteAccount removes the account and, through the FK cascades, every
// order, client and assignment it owns.
func (uc *UserController) DeleteAccount(c *gin.Context) {
	accountID, ok := middlewares.AccountID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("account id not found in context"))
		return
	}

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("account_id = ?", accountID).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.Assignment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("account_id = ?", accountID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", accountID).Delete(&models.Client{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, accountID).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if sid := c.GetString(middlewares.SessionCookie); sid != "" {
		_ = uc.Sessions.Delete(c.Request.Context(), sid)
	}
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)

	utils.InfoLogger.Printf("Account deleted (ID=%d)", accountID)

	utils.RespondJSON(c, http.StatusOK, "Account deleted", gin.H{"account_id": accountID})
}
