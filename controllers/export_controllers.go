package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/calendar"
	"github.com/pulizieapp/cleaning-planner/middlewares"
	"github.com/pulizieapp/cleaning-planner/models"
	"github.com/pulizieapp/cleaning-planner/utils"
)

const exportTokenTTL = 15 * time.Minute

type ExportController struct {
	DB *gorm.DB
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

func icsDomain() string {
	if d := os.Getenv("ICS_DOMAIN"); d != "" {
		return d
	}
	return "cleaning-planner.local"
}

// writeICS renders the order and hands it to the client as a calendar file
// named after the order.
func writeICS(c *gin.Context, order models.Order) {
	payload := calendar.RenderICS(order, icsDomain(), time.Now())

	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"':
			return '_'
		}
		return r
	}, order.Name)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".ics"))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(payload))
}

// ExportOrder returns the ICS document for one order. An order without a
// start time cannot be exported; the client must prompt for one first.
func (ec *ExportController) ExportOrder(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := ec.DB.Where("account_id = ?", accountID).Preload("Employees").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if order.StartTime == nil || *order.StartTime == "" {
		utils.RespondError(c, http.StatusUnprocessableEntity, errNoStartTime)
		return
	}

	writeICS(c, order)
}

// ExportLink issues a short-lived signed URL for one order, so calendar
// applications can fetch the ICS file without the session cookie.
func (ec *ExportController) ExportLink(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := ec.DB.Where("account_id = ?", accountID).First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if order.StartTime == nil || *order.StartTime == "" {
		utils.RespondError(c, http.StatusUnprocessableEntity, errNoStartTime)
		return
	}

	token, err := utils.GenerateExportToken(order.ID, accountID, exportTokenTTL)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Export link created", gin.H{
		"url":        "/calendar/export?token=" + token,
		"expires_in": int(exportTokenTTL.Seconds()),
	})
}

// ExportByToken serves an ICS download authorized by a signed token instead
// of a session. Mounted on a public route.
func (ec *ExportController) ExportByToken(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("missing export token"))
		return
	}

	claims, err := utils.ParseExportToken(tokenString)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired export token"))
		return
	}

	var order models.Order
	if err := ec.DB.Where("account_id = ?", claims.AccountID).Preload("Employees").First(&order, claims.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if order.StartTime == nil || *order.StartTime == "" {
		utils.RespondError(c, http.StatusUnprocessableEntity, errNoStartTime)
		return
	}

	writeICS(c, order)
}
