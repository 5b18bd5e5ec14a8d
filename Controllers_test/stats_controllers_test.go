package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/controllers"
	"github.com/pulizieapp/cleaning-planner/models"
)

func setupStatsRouter(t *testing.T, accountID uint) (*gin.Engine, *gorm.DB) {
	db := setupTestDB(t)
	db.Create(&models.Account{Email: "owner@example.com", Password: "x"})

	r := newTestRouter()
	statsCtrl := controllers.NewStatsController(db)
	authed := r.Group("/admin", asAccount(accountID))
	authed.GET("/dashboard/stats", statsCtrl.GetDashboardStats)
	authed.GET("/reports/export", statsCtrl.ExportReport)
	return r, db
}

func pricePtr(p float64) *float64 { return &p }

func TestGetDashboardStats(t *testing.T) {
	r, db := setupStatsRouter(t, 1)

	today := time.Now().Format("2006-01-02")
	seed := []models.Order{
		{AccountID: 1, Name: "A", CleaningDate: today, Status: models.StatusDone, PaymentStatus: models.PaymentPaid, Price: pricePtr(50)},
		{AccountID: 1, Name: "B", CleaningDate: "2020-01-15", Status: models.StatusTodo, PaymentStatus: models.PaymentPaid, Price: pricePtr(30)},
		{AccountID: 1, Name: "C", CleaningDate: "2020-01-20", Status: models.StatusTodo, PaymentStatus: models.PaymentUnpaid, Price: pricePtr(99), IsFavorite: true},
		{AccountID: 2, Name: "Altrui", CleaningDate: today, Status: models.StatusDone, PaymentStatus: models.PaymentPaid, Price: pricePtr(1000)},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}
	require.NoError(t, db.Create(&models.Client{AccountID: 1, FirstName: "Mario", LastName: "Rossi"}).Error)

	w := doJSON(t, r, "GET", "/admin/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalOrders  int64   `json:"total_orders"`
			TodayOrders  int64   `json:"today_orders"`
			TotalClients int64   `json:"total_clients"`
			Favorites    int64   `json:"favorites"`
			TotalRevenue float64 `json:"total_revenue"`
			OrderStats   struct {
				Todo int64 `json:"da_fare"`
				Done int64 `json:"fatto"`
			} `json:"order_stats"`
			PaymentStats struct {
				Unpaid int64 `json:"da_pagare"`
				Paid   int64 `json:"pagato"`
			} `json:"payment_stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, int64(3), resp.Data.TotalOrders, "other accounts excluded")
	assert.Equal(t, int64(1), resp.Data.TodayOrders)
	assert.Equal(t, int64(1), resp.Data.TotalClients)
	assert.Equal(t, int64(1), resp.Data.Favorites)
	assert.Equal(t, 80.0, resp.Data.TotalRevenue, "revenue counts paid orders only")
	assert.Equal(t, int64(2), resp.Data.OrderStats.Todo)
	assert.Equal(t, int64(1), resp.Data.OrderStats.Done)
	assert.Equal(t, int64(1), resp.Data.PaymentStats.Unpaid)
	assert.Equal(t, int64(2), resp.Data.PaymentStats.Paid)
}

func TestExportReportXLSX(t *testing.T) {
	r, db := setupStatsRouter(t, 1)

	require.NoError(t, db.Create(&models.Order{
		AccountID: 1, Name: "Via Roma 1", CleaningDate: "2025-03-10",
		Price: pricePtr(45), PaymentStatus: models.PaymentPaid,
	}).Error)

	w := doJSON(t, r, "GET", "/admin/reports/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())

	// Range filter excludes everything.
	w = doJSON(t, r, "GET", "/admin/reports/export?from=2030-01-01&to=2030-12-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
