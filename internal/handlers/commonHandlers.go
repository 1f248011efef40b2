package handlers

import (
	"net/http"

	"easybooking/internal/database"
	"easybooking/internal/utils"
)

type CommonHandler struct {
	db database.Service
}

func NewCommonHandler(db database.Service) *CommonHandler {
	return &CommonHandler{db: db}
}

// Root serves the health/info payload listing the available endpoints.
func (h *CommonHandler) Root(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Easy Booking Backend API",
		"message": "API is running",
		"endpoints": []string{
			"POST /api/admin/login - Admin login",
			"GET /api/trending/trenddata - Get all trending items",
			"POST /api/trending/add - Add new trending item (requires auth)",
			"DELETE /api/trending/delete/{name} - Delete trending item by name (requires auth)",
		},
	})
}

func (h *CommonHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.db.Health())
}
