package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/cache"
	"github.com/pulizieapp/cleaning-planner/calendar"
	"github.com/pulizieapp/cleaning-planner/middlewares"
	"github.com/pulizieapp/cleaning-planner/models"
	"github.com/pulizieapp/cleaning-planner/utils"
)

type OrderController struct {
	DB    *gorm.DB
	Cache *cache.MonthCache // nil disables caching
}

func NewOrderController(db *gorm.DB, monthCache *cache.MonthCache) *OrderController {
	return &OrderController{DB: db, Cache: monthCache}
}

func validDate(s string) bool {
	_, err := time.Parse(calendar.DateLayout, s)
	return err == nil
}

func validTime(s string) bool {
	_, err := time.Parse(calendar.TimeLayout, s)
	return err == nil
}

func (oc *OrderController) invalidate(c *gin.Context, accountID uint, dates ...string) {
	if oc.Cache == nil {
		return
	}
	// A date is also rendered on the neighboring months' grids through
	// their pad rows, so those cached views go stale too.
	months := make([]string, 0, 3*len(dates))
	for _, d := range dates {
		months = append(months, cache.GridMonths(d)...)
	}
	if err := oc.Cache.InvalidateMonths(c.Request.Context(), accountID, months...); err != nil {
		utils.ErrorLogger.Errorf("cache invalidation failed: %v", err)
	}
}

// scoped returns the order query restricted to the session account. Rows of
// other accounts are indistinguishable from missing ones (404, no leak).
func (oc *OrderController) scoped(accountID uint) *gorm.DB {
	return oc.DB.Where("account_id = ?", accountID)
}

// GetAllOrders lists the account's orders for a day or a date range, with
// the filter/sort engine applied server-side.
//
// Query params: date | from+to, favorite, status, payment, sort.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)

	tx := oc.scoped(accountID).Preload("Employees")
	if date := c.Query("date"); date != "" {
		if !validDate(date) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date))
			return
		}
		tx = tx.Where("cleaning_date = ?", date)
	} else if from, to := c.Query("from"), c.Query("to"); from != "" || to != "" {
		if !validDate(from) || !validDate(to) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("from/to must both be YYYY-MM-DD"))
			return
		}
		tx = tx.Where("cleaning_date BETWEEN ? AND ?", from, to)
	}

	var orders []models.Order
	if err := tx.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filters, mode, err := parseFilterQuery(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", calendar.ApplyFilterAndSort(orders, filters, mode))
}

func parseFilterQuery(c *gin.Context) (calendar.Filters, calendar.SortMode, error) {
	var filters calendar.Filters

	if fav := c.Query("favorite"); fav != "" {
		v, err := strconv.ParseBool(fav)
		if err != nil {
			return filters, "", fmt.Errorf("invalid favorite %q", fav)
		}
		filters.Favorite = &v
	}
	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(status) {
			return filters, "", fmt.Errorf("invalid status %q", status)
		}
		filters.Status = &status
	}
	if payment := c.Query("payment"); payment != "" {
		if !models.ValidPaymentStatus(payment) {
			return filters, "", fmt.Errorf("invalid payment status %q", payment)
		}
		filters.Payment = &payment
	}

	mode := calendar.SortDateAsc
	if s := c.Query("sort"); s != "" {
		m, ok := calendar.ParseSortMode(s)
		if !ok {
			return filters, "", fmt.Errorf("invalid sort mode %q", s)
		}
		mode = m
	}
	return filters, mode, nil
}

type orderRequest struct {
	Name          string   `json:"name" binding:"required"`
	CleaningDate  string   `json:"cleaning_date" binding:"required"`
	StartTime     *string  `json:"start_time"`
	Status        string   `json:"status"`
	PaymentStatus string   `json:"payment_status"`
	Price         *float64 `json:"price"`
	Notes         *string  `json:"notes"`
	IsFavorite    bool     `json:"is_favorite"`
	EmployeeIDs   []uint   `json:"employee_ids"`
}

// loadClients resolves employee ids within the account; unknown ids are an
// error rather than silently dropped.
func (oc *OrderController) loadClients(accountID uint, ids []uint) ([]models.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var clients []models.Client
	if err := oc.DB.Where("account_id = ? AND id IN ?", accountID, ids).Find(&clients).Error; err != nil {
		return nil, err
	}
	if len(clients) != len(ids) {
		return nil, errors.New("one or more employees not found")
	}
	return clients, nil
}

// CreateOrder creates a new cleaning order.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)

	var body orderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !validDate(body.CleaningDate) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid cleaning_date %q", body.CleaningDate))
		return
	}
	if body.StartTime != nil && *body.StartTime != "" && !validTime(*body.StartTime) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid start_time %q, want HH:MM", *body.StartTime))
		return
	}
	if body.Price != nil && *body.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
		return
	}

	order := models.Order{
		AccountID:     accountID,
		Name:          body.Name,
		CleaningDate:  body.CleaningDate,
		StartTime:     body.StartTime,
		Status:        models.StatusTodo,
		PaymentStatus: models.PaymentUnpaid,
		Price:         body.Price,
		Notes:         body.Notes,
		IsFavorite:    body.IsFavorite,
	}
	if body.StartTime != nil && *body.StartTime == "" {
		order.StartTime = nil
	}
	if body.Status != "" {
		if !models.ValidStatus(body.Status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", body.Status))
			return
		}
		order.Status = body.Status
	}
	if body.PaymentStatus != "" {
		if !models.ValidPaymentStatus(body.PaymentStatus) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid payment status %q", body.PaymentStatus))
			return
		}
		order.PaymentStatus = body.PaymentStatus
	}

	clients, err := oc.loadClients(accountID, body.EmployeeIDs)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	order.Employees = clients

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.invalidate(c, accountID, order.CleaningDate)
	utils.InfoLogger.Printf("Order created (ID=%d) for %s", order.ID, order.CleaningDate)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID returns one order with its assigned employees.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.scoped(accountID).Preload("Employees").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder applies the supplied fields to an order. An empty string for
// start_time or notes clears the field.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	type reqBody struct {
		Name          *string  `json:"name"`
		CleaningDate  *string  `json:"cleaning_date"`
		StartTime     *string  `json:"start_time"`
		Status        *string  `json:"status"`
		PaymentStatus *string  `json:"payment_status"`
		Price         *float64 `json:"price"`
		Notes         *string  `json:"notes"`
		IsFavorite    *bool    `json:"is_favorite"`
		EmployeeIDs   *[]uint  `json:"employee_ids"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.scoped(accountID).First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	oldDate := order.CleaningDate

	if body.Name != nil {
		if *body.Name == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("name must not be empty"))
			return
		}
		order.Name = *body.Name
	}
	if body.CleaningDate != nil {
		if !validDate(*body.CleaningDate) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid cleaning_date %q", *body.CleaningDate))
			return
		}
		order.CleaningDate = *body.CleaningDate
	}
	if body.StartTime != nil {
		if *body.StartTime == "" {
			order.StartTime = nil
		} else if !validTime(*body.StartTime) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid start_time %q, want HH:MM", *body.StartTime))
			return
		} else {
			order.StartTime = body.StartTime
		}
	}
	if body.Status != nil {
		if !models.ValidStatus(*body.Status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", *body.Status))
			return
		}
		order.Status = *body.Status
	}
	if body.PaymentStatus != nil {
		if !models.ValidPaymentStatus(*body.PaymentStatus) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid payment status %q", *body.PaymentStatus))
			return
		}
		order.PaymentStatus = *body.PaymentStatus
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		order.Price = body.Price
	}
	if body.Notes != nil {
		if *body.Notes == "" {
			order.Notes = nil
		} else {
			order.Notes = body.Notes
		}
	}
	if body.IsFavorite != nil {
		order.IsFavorite = *body.IsFavorite
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if body.EmployeeIDs != nil {
		clients, err := oc.loadClients(accountID, *body.EmployeeIDs)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		if err := oc.DB.Model(&order).Association("Employees").Replace(clients); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if err := oc.DB.Preload("Employees").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.invalidate(c, accountID, oldDate, order.CleaningDate)

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder removes an order together with its assignments.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.scoped(accountID).First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.invalidate(c, accountID, order.CleaningDate)

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}

// ToggleFavorite flips the favorite flag.
func (oc *OrderController) ToggleFavorite(c *gin.Context) {
	accountID, _ := middlewares.AccountID(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.scoped(accountID).First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.IsFavorite = !order.IsFavorite
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.invalidate(c, accountID, order.CleaningDate)

	utils.RespondJSON(c, http.StatusOK, "Favorite updated", gin.H{
		"order_id":    order.ID,
		"is_favorite": order.IsFavorite,
	})
}
