package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"easybooking/internal/services"
	"easybooking/internal/utils"
)

// multipartMemory is how much of a parsed form is held in memory before
// spilling to disk; the media pipeline re-stages files anyway.
const multipartMemory = 32 << 20

type TrendingHandler struct {
	trendingService services.TrendingService
	maxUploadBytes  int64
}

func NewTrendingHandler(trendingService services.TrendingService, maxUploadBytes int64) *TrendingHandler {
	return &TrendingHandler{trendingService: trendingService, maxUploadBytes: maxUploadBytes}
}

// GetTrendData returns every item verbatim, matching what the frontend
// consumes. No auth, no pagination.
func (h *TrendingHandler) GetTrendData(w http.ResponseWriter, r *http.Request) error {
	items, err := h.trendingService.List(r.Context())
	if err != nil {
		return err
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
	return nil
}

func (h *TrendingHandler) AddTrending(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return err
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	input := &services.TrendingInput{
		Name:            r.FormValue("name"),
		Subname:         r.FormValue("subname"),
		Description:     r.FormValue("description"),
		Location:        r.FormValue("location"),
		Highlights:      r.FormValue("highlights"),
		Address:         r.FormValue("address"),
		Contact:         r.FormValue("contact"),
		AvailableThings: r.FormValue("availableThings"),
	}

	input.Files.Images[0] = formFile(r, "image")
	for i := 1; i <= 6; i++ {
		input.Files.Images[i] = formFile(r, fmt.Sprintf("image%d", i))
	}
	input.Files.Video = formFile(r, "video")

	if err := h.trendingService.Add(r.Context(), input); err != nil {
		return err
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Trending item added successfully",
	})
	return nil
}

func (h *TrendingHandler) DeleteTrending(w http.ResponseWriter, r *http.Request) error {
	name := mux.Vars(r)["name"]

	if _, err := h.trendingService.Delete(r.Context(), name); err != nil {
		return err
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Trending item %q deleted successfully", name),
	})
	return nil
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
