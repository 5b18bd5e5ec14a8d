package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/calendar"
	"github.com/pulizieapp/cleaning-planner/middlewares"
	"github.com/pulizieapp/cleaning-planner/models"
	"github.com/pulizieapp/cleaning-planner/utils"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GetDashboardStats aggregates the account's totals for the dashboard.
// Revenue only counts paid orders.
func (sc *StatsController) GetDashboardStats(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)

	today := time.Now().Format(calendar.DateLayout)
	month := today[:7] // YYYY-MM

	var stats struct {
		TotalOrders  int64   `json:"total_orders"`
		TodayOrders  int64   `json:"today_orders"`
		TotalClients int64   `json:"total_clients"`
		Favorites    int64   `json:"favorites"`
		TotalRevenue float64 `json:"total_revenue"`
		MonthRevenue float64 `json:"month_revenue"`
		OrderStats   struct {
			Todo       int64 `json:"da_fare"`
			InProgress int64 `json:"in_corso"`
			Done       int64 `json:"fatto"`
		} `json:"order_stats"`
		PaymentStats struct {
			Unpaid int64 `json:"da_pagare"`
			Paid   int64 `json:"pagato"`
		} `json:"payment_stats"`
	}

	orders := func() *gorm.DB {
		return sc.DB.Model(&models.Order{}).Where("account_id = ?", accountID)
	}

	if err := orders().Count(&stats.TotalOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	orders().Where("cleaning_date = ?", today).Count(&stats.TodayOrders)
	orders().Where("is_favorite = ?", true).Count(&stats.Favorites)
	sc.DB.Model(&models.Client{}).Where("account_id = ?", accountID).Count(&stats.TotalClients)

	orders().Where("status = ?", models.StatusTodo).Count(&stats.OrderStats.Todo)
	orders().Where("status = ?", models.StatusInProgress).Count(&stats.OrderStats.InProgress)
	orders().Where("status = ?", models.StatusDone).Count(&stats.OrderStats.Done)

	orders().Where("payment_status = ?", models.PaymentUnpaid).Count(&stats.PaymentStats.Unpaid)
	orders().Where("payment_status = ?", models.PaymentPaid).Count(&stats.PaymentStats.Paid)

	orders().Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(price), 0)").Scan(&stats.TotalRevenue)
	orders().Where("payment_status = ? AND cleaning_date LIKE ?", models.PaymentPaid, month+"%").
		Select("COALESCE(SUM(price), 0)").Scan(&stats.MonthRevenue)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// ExportReport streams the account's orders as an xlsx workbook. Optional
// from/to query params restrict the date range.
func (sc *StatsController) ExportReport(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)

	tx := sc.DB.Where("account_id = ?", accountID).Preload("Employees")
	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		tx = tx.Where("cleaning_date BETWEEN ? AND ?", from, to)
	}

	var orders []models.Order
	if err := tx.Order("cleaning_date, id").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	buf, err := buildOrdersWorkbook(orders)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := "orders-" + time.Now().Format(calendar.DateLayout) + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf)
}
