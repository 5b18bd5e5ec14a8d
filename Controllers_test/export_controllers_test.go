package Controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/controllers"
	"github.com/pulizieapp/cleaning-planner/models"
)

func setupExportRouter(t *testing.T, accountID uint) (*gin.Engine, *gorm.DB) {
	db := setupTestDB(t)
	db.Create(&models.Account{Email: "owner@example.com", Password: "x"})

	r := newTestRouter()
	exportCtrl := controllers.NewExportController(db)
	r.GET("/calendar/export", exportCtrl.ExportByToken)
	authed := r.Group("/admin", asAccount(accountID))
	authed.GET("/orders/:order_id/export", exportCtrl.ExportOrder)
	authed.GET("/orders/:order_id/export-link", exportCtrl.ExportLink)
	return r, db
}

func TestExportOrderICS(t *testing.T) {
	r, db := setupExportRouter(t, 1)

	start := "07:00"
	require.NoError(t, db.Create(&models.Order{
		AccountID: 1, Name: "Test", CleaningDate: "2025-03-10", StartTime: &start,
	}).Error)

	w := doJSON(t, r, "GET", "/admin/orders/1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Test.ics")

	body := w.Body.String()
	assert.Contains(t, body, "DTSTART:20250310T070000")
	assert.Contains(t, body, "SUMMARY:Test")
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VALARM"))
}

func TestExportOrderWithoutStartTime(t *testing.T) {
	r, db := setupExportRouter(t, 1)

	require.NoError(t, db.Create(&models.Order{
		AccountID: 1, Name: "Test", CleaningDate: "2025-03-10",
	}).Error)

	w := doJSON(t, r, "GET", "/admin/orders/1/export", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "start time")

	w = doJSON(t, r, "GET", "/admin/orders/1/export-link", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExportLinkAndTokenDownload(t *testing.T) {
	r, db := setupExportRouter(t, 1)

	start := "09:30"
	require.NoError(t, db.Create(&models.Order{
		AccountID: 1, Name: "Via Roma 1", CleaningDate: "2025-04-02", StartTime: &start,
	}).Error)

	w := doJSON(t, r, "GET", "/admin/orders/1/export-link", nil)
	require.Equal(t, http.StatusOK, w.Code)
	url, _ := decodeData(t, w)["url"].(string)
	require.True(t, strings.HasPrefix(url, "/calendar/export?token="))

	// The signed link works without any session.
	w = doJSON(t, r, "GET", url, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DTSTART:20250402T093000")

	w = doJSON(t, r, "GET", "/calendar/export?token=garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "GET", "/calendar/export", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportScopedToAccount(t *testing.T) {
	r, db := setupExportRouter(t, 2)

	start := "07:00"
	require.NoError(t, db.Create(&models.Order{
		AccountID: 1, Name: "Altrui", CleaningDate: "2025-03-10", StartTime: &start,
	}).Error)

	w := doJSON(t, r, "GET", "/admin/orders/1/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
