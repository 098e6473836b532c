// FilePath: api/resources/api.resource.images.go
package resources

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agrotechfields/islehub/internal/config"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ImageHandlers encapsulates the image blob HTTP handlers
type ImageHandlers struct {
	hubservice *hubservice.HubService
	config     config.ImageStoreConfig
}

// @Summary Upload an image
// @Description Store an image blob under a unique name. The multipart form
// @Description must carry the blob in the "file" part and the name in the
// @Description "name" field (defaults to the uploaded filename).
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param name formData string false "Unique image name"
// @Success 201 {object} models.Image
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /image [post]
// @Security BearerAuth
func (h *ImageHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := r.ParseMultipartForm(h.config.MaxImageSize); err != nil {
		respondWithError(w, errors.NewValidationError("failed to parse multipart form", err), requestID)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, errors.NewValidationError("missing file in request", err), requestID)
		return
	}
	defer file.Close()

	if header.Size > h.config.MaxImageSize {
		respondWithError(w, errors.NewValidationError("image exceeds maximum allowed size", nil), requestID)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !h.isAllowedMimeType(mimeType) {
		respondWithError(w, errors.NewValidationError("unsupported image type: "+mimeType, nil), requestID)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.config.MaxImageSize+1))
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to read uploaded image", err), requestID)
		return
	}
	if int64(len(data)) > h.config.MaxImageSize {
		respondWithError(w, errors.NewValidationError("image exceeds maximum allowed size", nil), requestID)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	image := &models.Image{
		Name:     name,
		Data:     data,
		MimeType: mimeType,
	}

	if err := h.hubservice.CreateImage(r.Context(), image); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, image)
}

// @Summary List stored images
// @Description Returns image metadata only; blob data is fetched per image.
// @Tags images
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Image
// @Router /image [get]
// @Security BearerAuth
func (h *ImageHandlers) ListImages(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	images, err := h.hubservice.ListImages(r.Context(), offset, limit)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, images)
}

// @Summary Download an image by ID
// @Tags images
// @Produce octet-stream
// @Param id path string true "Image ID"
// @Success 200 {file} binary
// @Failure 404 {object} errors.APIError
// @Router /image/{id} [get]
// @Security BearerAuth
func (h *ImageHandlers) GetImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	image, err := h.hubservice.GetImage(r.Context(), vars["id"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	h.writeImage(w, image)
}

// @Summary Download an image by name
// @Tags images
// @Produce octet-stream
// @Param name path string true "Image name"
// @Success 200 {file} binary
// @Failure 404 {object} errors.APIError
// @Router /image/name/{name} [get]
// @Security BearerAuth
func (h *ImageHandlers) GetImageByName(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	image, err := h.hubservice.GetImageByName(r.Context(), vars["name"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	h.writeImage(w, image)
}

// @Summary Delete an image
// @Tags images
// @Param id path string true "Image ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /image/{id} [delete]
// @Security BearerAuth
func (h *ImageHandlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteImage(r.Context(), vars["id"]); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ImageHandlers) writeImage(w http.ResponseWriter, image *models.Image) {
	w.Header().Set("Content-Type", image.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Data)))
	w.Header().Set("Content-Disposition", `inline; filename="`+image.Name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(image.Data)
}

func (h *ImageHandlers) isAllowedMimeType(mimeType string) bool {
	for _, allowed := range h.config.AllowedMimeTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
