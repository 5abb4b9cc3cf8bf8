package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/aureajoias/aurea/app/services"
	"github.com/aureajoias/aurea/pkg/middleware"
	"github.com/aureajoias/aurea/pkg/response"
)

// maxBulkMemory bounds how much of the multipart body is held in memory;
// larger files spill to temp disk.
const maxBulkMemory = 32 << 20 // 32 MB

type BulkController struct {
	creator *services.BulkCreator
}

func NewBulkController(creator *services.BulkCreator) *BulkController {
	return &BulkController{creator: creator}
}

// Create handles the multipart bulk upload: category_id field plus one or
// more images[] files, one product created per image.
func (c *BulkController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBulkMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Envio inválido")
		return
	}

	categoryID, err := uuid.Parse(r.FormValue("category_id"))
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, services.ErrNoCategory.Error())
		return
	}

	fileHeaders := r.MultipartForm.File["images[]"]
	if len(fileHeaders) == 0 {
		fileHeaders = r.MultipartForm.File["images"]
	}

	files := make([]services.BulkFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Falha ao ler imagem: "+header.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Falha ao ler imagem: "+header.Filename)
			return
		}
		files = append(files, services.BulkFile{Name: header.Filename, Data: data})
	}

	var createdBy *uuid.UUID
	if ident := middleware.IdentityFromCtx(r.Context()); ident != nil {
		userID := ident.Claims.UserID
		createdBy = &userID
	}

	result, err := c.creator.Create(r.Context(), categoryID, files, createdBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoCategory),
			errors.Is(err, services.ErrNoFiles),
			errors.Is(err, services.ErrCategoryNotFound):
			response.Error(w, http.StatusUnprocessableEntity, err.Error())
		default:
			// Partial batches keep their completed units; report both.
			response.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.Created(w, result.Message, map[string]interface{}{
		"created": result.Created,
	})
}
