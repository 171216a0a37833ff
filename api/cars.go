package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/carbooking/internal/auth"
	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/service/cars"
	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	service cars.CarUseCase
}

type carRequest struct {
	Model            string              `json:"car_model" binding:"required"`
	DailyRentalPrice float64             `json:"daily_rental_price"`
	AddedDate        string              `json:"added_date"`
	UserDetails      domain.OwnerDetails `json:"user_details"`
	Availability     string              `json:"availability"`
	BookingCount     int                 `json:"bookingCount"`
}

func (r carRequest) toCar() *domain.Car {
	return &domain.Car{
		Model:            r.Model,
		DailyRentalPrice: r.DailyRentalPrice,
		AddedDate:        r.AddedDate,
		Owner:            r.UserDetails,
		Availability:     r.Availability,
		BookingCount:     r.BookingCount,
	}
}

func NewCarHandler(service cars.CarUseCase) *CarHandler {
	return &CarHandler{service: service}
}

// Register wires the listing routes; gate is the authentication
// middleware applied to the owner-scoped read.
func (h *CarHandler) Register(router *gin.RouterGroup, gate gin.HandlerFunc) {
	router.POST("/add-car", h.create)
	router.GET("/available-cars", h.available)
	router.GET("/recent-listings", h.recent)
	router.GET("/cars/:email", gate, auth.RequireOwner(), h.listByOwner)
	router.GET("/car/:id", h.get)
	router.PUT("/update-car/:id", h.update)
	router.DELETE("/car/:id", h.remove)
}

func (h *CarHandler) create(c *gin.Context) {
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.service.Add(c.Request.Context(), req.toCar())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"acknowledged": true, "insertedId": id})
}

func (h *CarHandler) available(c *gin.Context) {
	query := domain.CarQuery{
		Search:      c.Query("search"),
		SortByPrice: c.Query("sortByPrice"),
		SortByDate:  c.Query("sortByDate"),
	}

	result, err := h.service.Available(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CarHandler) recent(c *gin.Context) {
	result, err := h.service.Recent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CarHandler) listByOwner(c *gin.Context) {
	result, err := h.service.ListByOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CarHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	car, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req.toCar())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CarHandler) remove(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": deleted})
}

// parseID reads the :id path parameter and writes the 400 itself so
// callers can just bail out.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return id, nil
}
