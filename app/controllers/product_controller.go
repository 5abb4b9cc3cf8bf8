package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/pkg/middleware"
	"github.com/aureajoias/aurea/pkg/response"
	"github.com/aureajoias/aurea/pkg/whatsapp"
)

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	Featured    bool     `json:"featured"`
	Active      *bool    `json:"active"`
	Images      []struct {
		URL          string  `json:"url" validate:"required"`
		AltText      *string `json:"alt_text"`
		DisplayOrder int     `json:"display_order"`
	} `json:"images" validate:"dive"`
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 24
	}
	return page, limit
}

func urlParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// List serves the public storefront catalog: active products, paginated.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	products, pagination, err := c.products.List(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Paginated(w, products, pagination)
}

// ListFeatured serves the home page highlight strip.
func (c *ProductController) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.ListFeatured()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, products)
}

// Get serves one product detail page.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	product, err := c.products.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, product)
}

// WhatsAppLink returns the click-to-chat inquiry URL for a product.
func (c *ProductController) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	product, err := c.products.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(w, map[string]string{
		"link":            whatsapp.GenerateLink(product.Name, product.Price),
		"formatted_price": whatsapp.FormatPrice(product.Price),
	})
}

// ListAll serves the admin panel: every product, including inactive ones.
func (c *ProductController) ListAll(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	products, pagination, err := c.products.ListAll(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Paginated(w, products, pagination)
}

// Create adds a product from the admin panel.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(body); err != nil {
		response.ValidationError(w, validationErrors(err))
		return
	}

	product := models.Product{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Featured:    body.Featured,
		Active:      true,
	}
	if body.Active != nil {
		product.Active = *body.Active
	}
	if body.CategoryID != nil {
		id, err := uuid.Parse(*body.CategoryID)
		if err == nil {
			product.CategoryID = &id
		}
	}
	if ident := middleware.IdentityFromCtx(r.Context()); ident != nil {
		userID := ident.Claims.UserID
		product.CreatedBy = &userID
	}

	if err := c.products.Create(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	for i, img := range body.Images {
		image := models.ProductImage{
			ProductID:    product.ID,
			ImageURL:     img.URL,
			AltText:      img.AltText,
			DisplayOrder: img.DisplayOrder,
		}
		if image.DisplayOrder == 0 {
			image.DisplayOrder = i
		}
		if err := c.products.AddImage(&image); err != nil {
			response.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	response.Created(w, "Produto criado com sucesso!", product)
}

// Update edits a product from the admin panel.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	product, err := c.products.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	var body productRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(body); err != nil {
		response.ValidationError(w, validationErrors(err))
		return
	}

	product.Name = body.Name
	product.Description = body.Description
	product.Price = body.Price
	product.Featured = body.Featured
	if body.Active != nil {
		product.Active = *body.Active
	}
	product.CategoryID = nil
	if body.CategoryID != nil {
		if categoryID, err := uuid.Parse(*body.CategoryID); err == nil {
			product.CategoryID = &categoryID
		}
	}

	// Save only the product columns; associations are replaced below.
	product.Category = nil
	product.Images = nil
	if err := c.products.Update(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if body.Images != nil {
		images := make([]models.ProductImage, len(body.Images))
		for i, img := range body.Images {
			images[i] = models.ProductImage{
				ImageURL:     img.URL,
				AltText:      img.AltText,
				DisplayOrder: img.DisplayOrder,
			}
		}
		if err := c.products.ReplaceImages(product.ID, images); err != nil {
			response.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	response.SuccessMessage(w, "Produto atualizado com sucesso!", product)
}

// Delete removes a product and its images from the admin panel.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := c.products.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessMessage(w, "Produto excluído com sucesso!", nil)
}
