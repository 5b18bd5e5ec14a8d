package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/middlewares"
	"github.com/pulizieapp/cleaning-planner/models"
	"github.com/pulizieapp/cleaning-planner/utils"
)

type ClientController struct {
	DB *gorm.DB
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{DB: db}
}

// GetAllClients lists the account's clients.
func (cc *ClientController) GetAllClients(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)

	var clients []models.Client
	if err := cc.DB.Where("account_id = ?", accountID).Find(&clients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of clients", clients)
}

// CreateClient creates a new client record.
func (cc *ClientController) CreateClient(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)

	type reqBody struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	client := models.Client{
		AccountID: accountID,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	}
	if err := cc.DB.Create(&client).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New client created (ID=%d)", client.ID)

	utils.RespondJSON(c, http.StatusCreated, "Client created", client)
}

// GetClientByID returns one client.
func (cc *ClientController) GetClientByID(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("client_id"))

	var client models.Client
	if err := cc.DB.Where("account_id = ?", accountID).First(&client, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Client detail", client)
}

// GetClientOrders returns the orders a client is assigned to (derived,
// read-only view of the assignment join).
func (cc *ClientController) GetClientOrders(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("client_id"))

	var client models.Client
	if err := cc.DB.Where("account_id = ?", accountID).Preload("Orders").First(&client, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Client orders", client.Orders)
}

// UpdateClient applies the supplied name fields.
func (cc *ClientController) UpdateClient(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("client_id"))

	type reqBody struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var client models.Client
	if err := cc.DB.Where("account_id = ?", accountID).First(&client, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.FirstName != nil {
		client.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		client.LastName = *body.LastName
	}

	if err := cc.DB.Save(&client).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Client updated", client)
}

// DeleteClient removes a client and its assignments.
func (cc *ClientController) DeleteClient(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("client_id"))

	var client models.Client
	if err := cc.DB.Where("account_id = ?", accountID).First(&client, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Client deleted", gin.H{"client_id": client.ID})
}
