package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/controllers"
	"github.com/pulizieapp/cleaning-planner/models"
)

func setupClientRouter(t *testing.T, accountID uint) (*gin.Engine, *gorm.DB) {
	db := setupTestDB(t)
	db.Create(&models.Account{Email: "owner@example.com", Password: "x"})

	r := newTestRouter()
	clientCtrl := controllers.NewClientController(db)
	authed := r.Group("/admin", asAccount(accountID))
	authed.GET("/clients", clientCtrl.GetAllClients)
	authed.POST("/clients", clientCtrl.CreateClient)
	authed.GET("/clients/:client_id", clientCtrl.GetClientByID)
	authed.GET("/clients/:client_id/orders", clientCtrl.GetClientOrders)
	authed.PATCH("/clients/:client_id", clientCtrl.UpdateClient)
	authed.DELETE("/clients/:client_id", clientCtrl.DeleteClient)
	return r, db
}

func TestClientCRUD(t *testing.T) {
	r, _ := setupClientRouter(t, 1)

	w := doJSON(t, r, "POST", "/admin/clients", map[string]interface{}{
		"first_name": "Mario",
		"last_name":  "Rossi",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "Mario", data["first_name"])

	w = doJSON(t, r, "POST", "/admin/clients", map[string]interface{}{"first_name": "Solo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "PATCH", "/admin/clients/1", map[string]interface{}{"last_name": "Bianchi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bianchi", decodeData(t, w)["last_name"])

	w = doJSON(t, r, "GET", "/admin/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = doJSON(t, r, "DELETE", "/admin/clients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/admin/clients/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetClientOrders(t *testing.T) {
	r, db := setupClientRouter(t, 1)

	client := models.Client{AccountID: 1, FirstName: "Mario", LastName: "Rossi"}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&models.Order{
		AccountID: 1, Name: "Via Roma 1", CleaningDate: "2025-03-10",
		Employees: []models.Client{client},
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		AccountID: 1, Name: "Senza addetti", CleaningDate: "2025-03-11",
	}).Error)

	w := doJSON(t, r, "GET", "/admin/clients/1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Via Roma 1", list[0].(map[string]interface{})["name"])
}

func TestDeleteClientRemovesAssignmentsButKeepsOrders(t *testing.T) {
	r, db := setupClientRouter(t, 1)

	client := models.Client{AccountID: 1, FirstName: "Mario", LastName: "Rossi"}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&models.Order{
		AccountID: 1, Name: "Via Roma 1", CleaningDate: "2025-03-10",
		Employees: []models.Client{client},
	}).Error)

	w := doJSON(t, r, "DELETE", "/admin/clients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var assignments, orders int64
	db.Model(&models.Assignment{}).Count(&assignments)
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(0), assignments)
	assert.Equal(t, int64(1), orders)
}

func TestClientsScopedToAccount(t *testing.T) {
	r, db := setupClientRouter(t, 2)

	require.NoError(t, db.Create(&models.Client{
		AccountID: 1, FirstName: "Mario", LastName: "Rossi",
	}).Error)

	w := doJSON(t, r, "GET", "/admin/clients/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "GET", "/admin/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}
