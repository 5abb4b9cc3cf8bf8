package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/app/services"
	"github.com/aureajoias/aurea/pkg/response"
)

type CategoryController struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
}

func NewCategoryController(categories *repositories.CategoryRepository, products *repositories.ProductRepository) *CategoryController {
	return &CategoryController{categories: categories, products: products}
}

type categoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	CoverImage  *string `json:"cover_image"`
}

// List returns every category for the storefront navigation.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, categories)
}

// Get returns one category by slug.
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	category, err := c.categories.GetBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, category)
}

// Products returns the active products of one category.
func (c *CategoryController) Products(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if _, err := c.categories.GetBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	products, err := c.products.ListByCategorySlug(slug)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, products)
}

// Create adds a category; the slug is derived from the name.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(body); err != nil {
		response.ValidationError(w, validationErrors(err))
		return
	}

	category := models.Category{
		Name:        body.Name,
		Slug:        services.SlugifyStrict(body.Name),
		Description: body.Description,
		CoverImage:  body.CoverImage,
	}
	if err := c.categories.Create(&category); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Created(w, "Categoria criada com sucesso!", category)
}

// Update edits a category; renaming re-derives the slug.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	category, err := c.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	var body categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(body); err != nil {
		response.ValidationError(w, validationErrors(err))
		return
	}

	category.Name = body.Name
	category.Slug = services.SlugifyStrict(body.Name)
	category.Description = body.Description
	category.CoverImage = body.CoverImage

	if err := c.categories.Update(&category); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessMessage(w, "Categoria atualizada com sucesso!", category)
}

// Delete removes a category.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamUUID(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := c.categories.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessMessage(w, "Categoria excluída com sucesso!", nil)
}
