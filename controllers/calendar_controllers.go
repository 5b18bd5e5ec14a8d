package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/cache"
	"github.com/pulizieapp/cleaning-planner/calendar"
	"github.com/pulizieapp/cleaning-planner/middlewares"
	"github.com/pulizieapp/cleaning-planner/models"
	"github.com/pulizieapp/cleaning-planner/utils"
)

type CalendarController struct {
	DB    *gorm.DB
	Cache *cache.MonthCache // nil disables caching
}

func NewCalendarController(db *gorm.DB, monthCache *cache.MonthCache) *CalendarController {
	return &CalendarController{DB: db, Cache: monthCache}
}

// monthCell is one grid slot plus the orders falling on that day.
type monthCell struct {
	Date           string         `json:"date"`
	IsCurrentMonth bool           `json:"is_current_month"`
	Orders         []models.Order `json:"orders"`
}

// GetMonth renders the 42-cell month view. The grid spans into the adjacent
// months, so orders are fetched for the whole span, not just the month.
func (cc *CalendarController) GetMonth(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid year %q", c.Param("year")))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid month %q", c.Param("month")))
		return
	}

	cells := calendar.BuildMonthGrid(year, month)
	first, last := cells[0].Date, cells[len(cells)-1].Date
	monthKey := fmt.Sprintf("%04d-%02d", year, month)

	var orders []models.Order
	cached := false
	if cc.Cache != nil {
		if hit, err := cc.Cache.GetMonth(c.Request.Context(), accountID, monthKey); err != nil {
			utils.ErrorLogger.Errorf("calendar cache read failed: %v", err)
		} else if hit != nil {
			orders, cached = hit, true
		}
	}

	if !cached {
		err := cc.DB.Preload("Employees").
			Where("account_id = ? AND cleaning_date BETWEEN ? AND ?", accountID, first, last).
			Find(&orders).Error
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if cc.Cache != nil {
			if err := cc.Cache.SetMonth(c.Request.Context(), accountID, monthKey, orders); err != nil {
				utils.ErrorLogger.Errorf("calendar cache write failed: %v", err)
			}
		}
	}

	grouped := calendar.GroupByDate(orders)
	view := make([]monthCell, 0, len(cells))
	for _, cell := range cells {
		dayOrders := grouped[cell.Date]
		if dayOrders == nil {
			dayOrders = []models.Order{}
		}
		view = append(view, monthCell{
			Date:           cell.Date,
			IsCurrentMonth: cell.IsCurrentMonth,
			Orders:         dayOrders,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Month calendar", gin.H{
		"year":  year,
		"month": month,
		"cells": view,
	})
}

// NextSortMode advances the day-view toggle through its six-state rotation.
func (cc *CalendarController) NextSortMode(c *gin.Context) {
	mode, ok := calendar.ParseSortMode(c.Param("mode"))
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid sort mode %q", c.Param("mode")))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Next sort mode", gin.H{
		"current": mode,
		"next":    calendar.NextSortMode(mode),
	})
}

var errNoStartTime = errors.New("set a start time before exporting the order")
