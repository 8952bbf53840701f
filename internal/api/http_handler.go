package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"catalog-spec-service/internal/domain"
	"catalog-spec-service/internal/filter"
	"catalog-spec-service/internal/registry"
	"catalog-spec-service/internal/specs"
	"catalog-spec-service/internal/store"
)

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	registry *registry.Service
	specs    *specs.Service
	filters  *filter.Engine
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(rs *registry.Service, ss *specs.Service, fe *filter.Engine) *HTTPHandler {
	return &HTTPHandler{
		registry: rs,
		specs:    ss,
		filters:  fe,
		validate: validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// --- Template Handlers ---

// TemplateCreateInput defines the expected input for creating a template.
type TemplateCreateInput struct {
	Name         string   `json:"name" validate:"required,max=100"`
	DisplayName  string   `json:"display_name" validate:"required,max=255"`
	DataType     string   `json:"data_type" validate:"required,oneof=text number boolean enum"`
	IsRequired   bool     `json:"is_required"`
	IsFilter     bool     `json:"is_filter"`
	DisplayOrder int32    `json:"display_order" validate:"gte=0"`
	EnumValues   []string `json:"enum_values" validate:"omitempty,dive,required"`
	Unit         *string  `json:"unit" validate:"omitempty,max=32"`
	Placeholder  *string  `json:"placeholder" validate:"omitempty,max=255"`
	HelpText     *string  `json:"help_text" validate:"omitempty,max=1024"`
}

func (h *HTTPHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var input TemplateCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	// Enum templates must declare their legal value set.
	if input.DataType == string(domain.DataTypeEnum) && len(input.EnumValues) == 0 {
		respondWithError(w, http.StatusBadRequest, "enum_values must be non-empty when data_type is enum")
		return
	}

	tpl := &domain.SpecTemplate{
		CategoryID:   categoryID,
		Name:         input.Name,
		DisplayName:  input.DisplayName,
		DataType:     domain.DataType(input.DataType),
		IsRequired:   input.IsRequired,
		IsFilter:     input.IsFilter,
		DisplayOrder: input.DisplayOrder,
		EnumValues:   input.EnumValues,
		Unit:         input.Unit,
		Placeholder:  input.Placeholder,
		HelpText:     input.HelpText,
	}

	created, err := h.registry.CreateTemplate(r.Context(), tpl)
	if err != nil {
		log.Printf("ERROR: CreateTemplate store operation failed: %v", err)
		if errors.Is(err, store.ErrTemplateNameExists) {
			respondWithError(w, http.StatusConflict, store.ErrTemplateNameExists.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to create template")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	templates, err := h.registry.TemplatesForCategory(r.Context(), categoryID)
	if err != nil {
		log.Printf("ERROR: ListTemplates store operation for category %d failed: %v", categoryID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	respondWithJSON(w, http.StatusOK, templates)
}

// TemplateUpdateInput defines the expected input for partially updating a
// template. Absent fields are left unchanged.
type TemplateUpdateInput struct {
	Name         *string  `json:"name" validate:"omitempty,max=100"`
	DisplayName  *string  `json:"display_name" validate:"omitempty,max=255"`
	DataType     *string  `json:"data_type" validate:"omitempty,oneof=text number boolean enum"`
	IsRequired   *bool    `json:"is_required"`
	IsFilter     *bool    `json:"is_filter"`
	DisplayOrder *int32   `json:"display_order" validate:"omitempty,gte=0"`
	EnumValues   []string `json:"enum_values" validate:"omitempty,dive,required"`
	Unit         *string  `json:"unit" validate:"omitempty,max=32"`
	Placeholder  *string  `json:"placeholder" validate:"omitempty,max=255"`
	HelpText     *string  `json:"help_text" validate:"omitempty,max=1024"`
}

func (h *HTTPHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, ok := parseIDParam(r, "templateId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var input TemplateUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	update := registry.TemplateUpdate{
		Name:         input.Name,
		DisplayName:  input.DisplayName,
		IsRequired:   input.IsRequired,
		IsFilter:     input.IsFilter,
		DisplayOrder: input.DisplayOrder,
		EnumValues:   input.EnumValues,
		Unit:         input.Unit,
		Placeholder:  input.Placeholder,
		HelpText:     input.HelpText,
	}
	if input.DataType != nil {
		dt := domain.DataType(*input.DataType)
		update.DataType = &dt
	}

	updated, err := h.registry.UpdateTemplate(r.Context(), templateID, update)
	if err != nil {
		log.Printf("ERROR: UpdateTemplate store operation for ID %d failed: %v", templateID, err)
		if errors.Is(err, store.ErrTemplateNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrTemplateNotFound.Error())
		} else if errors.Is(err, store.ErrTemplateNameExists) {
			respondWithError(w, http.StatusConflict, store.ErrTemplateNameExists.Error())
		} else if errors.Is(err, registry.ErrEnumValuesRequired) {
			respondWithError(w, http.StatusBadRequest, registry.ErrEnumValuesRequired.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to update template")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, ok := parseIDParam(r, "templateId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	err := h.registry.DeleteTemplate(r.Context(), templateID)
	if err != nil {
		log.Printf("ERROR: DeleteTemplate store operation for ID %d failed: %v", templateID, err)
		if errors.Is(err, store.ErrTemplateNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrTemplateNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete template")
		}
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

// PresetApplyInput carries the category slug the preset is keyed by.
type PresetApplyInput struct {
	Slug string `json:"slug" validate:"required,max=100"`
}

func (h *HTTPHandler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var input PresetApplyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := h.registry.ApplyPreset(r.Context(), categoryID, input.Slug)
	if err != nil {
		log.Printf("ERROR: ApplyPreset for category %d failed: %v", categoryID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to apply preset")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) ReapplyPreset(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var input PresetApplyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := h.registry.ReapplyPreset(r.Context(), categoryID, input.Slug)
	if err != nil {
		log.Printf("ERROR: ReapplyPreset for category %d failed: %v", categoryID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to reapply preset")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) GetTemplateInfo(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: slug")
		return
	}

	info, err := h.registry.TemplateInfo(r.Context(), categoryID, slug)
	if err != nil {
		log.Printf("ERROR: GetTemplateInfo for category %d failed: %v", categoryID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve template info")
		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

func (h *HTTPHandler) InitializeTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := h.registry.InitializeAll(r.Context())
	if err != nil {
		log.Printf("ERROR: InitializeTemplates failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to initialize category templates")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// --- Specification Handlers ---

func (h *HTTPHandler) ListProductSpecifications(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	specList, err := h.specs.ProductSpecifications(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: ListProductSpecifications for product %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve specifications")
		return
	}

	respondWithJSON(w, http.StatusOK, specList)
}

func (h *HTTPHandler) GetGroupedProductSpecifications(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	grouped, err := h.specs.GroupedProductSpecifications(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: GetGroupedProductSpecifications for product %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve specifications")
		return
	}

	respondWithJSON(w, http.StatusOK, grouped)
}

// SpecificationInput defines one specification row of a replace-all save.
type SpecificationInput struct {
	TemplateID   *int64   `json:"template_id" validate:"omitempty,gt=0"`
	Name         string   `json:"name" validate:"required,max=100"`
	DisplayName  string   `json:"display_name" validate:"required,max=255"`
	Value        string   `json:"value"`
	DataType     string   `json:"data_type" validate:"required,oneof=text number boolean enum"`
	IsRequired   bool     `json:"is_required"`
	IsFilter     bool     `json:"is_filter"`
	DisplayOrder int32    `json:"display_order" validate:"gte=0"`
	EnumValues   []string `json:"enum_values" validate:"omitempty,dive,required"`
	Unit         *string  `json:"unit" validate:"omitempty,max=32"`
}

// SaveSpecificationsInput is the replace-all payload. An empty list is
// legal and clears the product's specifications.
type SaveSpecificationsInput struct {
	Specifications []SpecificationInput `json:"specifications" validate:"dive"`
}

func (h *HTTPHandler) SaveProductSpecifications(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input SaveSpecificationsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if input.Specifications == nil {
		respondWithError(w, http.StatusBadRequest, "Missing required field: specifications")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	drafts := make([]domain.ProductSpec, 0, len(input.Specifications))
	for _, in := range input.Specifications {
		drafts = append(drafts, domain.ProductSpec{
			ProductID:    productID,
			TemplateID:   in.TemplateID,
			Name:         in.Name,
			DisplayName:  in.DisplayName,
			Value:        in.Value,
			DataType:     domain.DataType(in.DataType),
			IsRequired:   in.IsRequired,
			IsFilter:     in.IsFilter,
			DisplayOrder: in.DisplayOrder,
			EnumValues:   in.EnumValues,
			Unit:         in.Unit,
		})
	}

	saved, err := h.specs.SaveProductSpecifications(r.Context(), productID, drafts)
	if err != nil {
		log.Printf("ERROR: SaveProductSpecifications for product %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to save specifications")
		return
	}

	respondWithJSON(w, http.StatusOK, saved)
}

// SpecificationUpdateInput defines a partial single-row update.
type SpecificationUpdateInput struct {
	Name         *string  `json:"name" validate:"omitempty,max=100"`
	DisplayName  *string  `json:"display_name" validate:"omitempty,max=255"`
	Value        *string  `json:"value"`
	DataType     *string  `json:"data_type" validate:"omitempty,oneof=text number boolean enum"`
	IsRequired   *bool    `json:"is_required"`
	IsFilter     *bool    `json:"is_filter"`
	DisplayOrder *int32   `json:"display_order" validate:"omitempty,gte=0"`
	EnumValues   []string `json:"enum_values" validate:"omitempty,dive,required"`
	Unit         *string  `json:"unit" validate:"omitempty,max=32"`
}

func (h *HTTPHandler) UpdateProductSpecification(w http.ResponseWriter, r *http.Request) {
	specID, ok := parseIDParam(r, "specId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid specification ID format")
		return
	}

	var input SpecificationUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	update := specs.SpecUpdate{
		Name:         input.Name,
		DisplayName:  input.DisplayName,
		Value:        input.Value,
		IsRequired:   input.IsRequired,
		IsFilter:     input.IsFilter,
		DisplayOrder: input.DisplayOrder,
		EnumValues:   input.EnumValues,
		Unit:         input.Unit,
	}
	if input.DataType != nil {
		dt := domain.DataType(*input.DataType)
		update.DataType = &dt
	}

	updated, err := h.specs.UpdateProductSpecification(r.Context(), specID, update)
	if err != nil {
		log.Printf("ERROR: UpdateProductSpecification for ID %d failed: %v", specID, err)
		if errors.Is(err, store.ErrSpecificationNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrSpecificationNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to update specification")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// ValidateSpecificationsInput maps specification names to raw values.
type ValidateSpecificationsInput struct {
	Values map[string]string `json:"values" validate:"required"`
}

func (h *HTTPHandler) ValidateSpecifications(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var input ValidateSpecificationsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	results, err := h.specs.ValidateForCategory(r.Context(), categoryID, input.Values)
	if err != nil {
		log.Printf("ERROR: ValidateSpecifications for category %d failed: %v", categoryID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to validate specifications")
		return
	}

	respondWithJSON(w, http.StatusOK, results)
}

// BuildFromTemplatesInput rebuilds a product's specification set from the
// category's current templates plus user-entered values.
type BuildFromTemplatesInput struct {
	CategoryID int64             `json:"category_id" validate:"required,gt=0"`
	Values     map[string]string `json:"values"`
}

func (h *HTTPHandler) BuildSpecificationsFromTemplates(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input BuildFromTemplatesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	created, err := h.specs.BuildFromTemplates(r.Context(), productID, input.CategoryID, input.Values)
	if err != nil {
		log.Printf("ERROR: BuildSpecificationsFromTemplates for product %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to build specifications from templates")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// --- Filter/Comparison Handlers ---

func (h *HTTPHandler) GetCategoryFilters(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	descriptors, err := h.filters.FiltersForCategory(r.Context(), categoryID)
	if err != nil {
		log.Printf("ERROR: GetCategoryFilters for category %d failed: %v", categoryID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve filters")
		return
	}

	respondWithJSON(w, http.StatusOK, descriptors)
}

func (h *HTTPHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var query filter.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	for name, bounds := range query.Ranges {
		if bounds.Min != nil && bounds.Max != nil && *bounds.Min > *bounds.Max {
			respondWithError(w, http.StatusBadRequest, "Invalid range for "+name+": min cannot exceed max")
			return
		}
	}

	products, err := h.filters.Search(r.Context(), categoryID, query)
	if err != nil {
		log.Printf("ERROR: SearchProducts for category %d failed: %v", categoryID, err)
		if errors.Is(err, store.ErrCategoryNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrCategoryNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to search products")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) CompareProducts(w http.ResponseWriter, r *http.Request) {
	idsParam := r.URL.Query().Get("ids")
	if idsParam == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: ids")
		return
	}

	parts := strings.Split(idsParam, ",")
	if len(parts) < 2 || len(parts) > 4 {
		respondWithError(w, http.StatusBadRequest, "Comparison requires between 2 and 4 product ids")
		return
	}
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid product ID format in ids")
			return
		}
		ids = append(ids, id)
	}

	comparison, err := h.filters.Compare(r.Context(), ids)
	if err != nil {
		log.Printf("ERROR: CompareProducts for ids %v failed: %v", ids, err)
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to compare products")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, comparison)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/categories/{categoryId}", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/", h.CreateTemplate)
			r.Post("/apply", h.ApplyPreset)
			r.Put("/reapply", h.ReapplyPreset)
			r.Get("/info", h.GetTemplateInfo)
		})
		r.Post("/specifications/validate", h.ValidateSpecifications)
		r.Get("/filters", h.GetCategoryFilters)
		r.Post("/search", h.SearchProducts)
	})

	r.Route("/api/v1/templates/{templateId}", func(r chi.Router) {
		r.Put("/", h.UpdateTemplate)
		r.Delete("/", h.DeleteTemplate)
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		// Before the {productId} routes so "compare" is not parsed as an ID.
		r.Get("/compare", h.CompareProducts)

		r.Route("/{productId}/specifications", func(r chi.Router) {
			r.Get("/", h.ListProductSpecifications)
			r.Put("/", h.SaveProductSpecifications)
			r.Get("/grouped", h.GetGroupedProductSpecifications)
			r.Post("/from-templates", h.BuildSpecificationsFromTemplates)
		})
	})

	r.Put("/api/v1/specifications/{specId}", h.UpdateProductSpecification)

	r.Post("/api/v1/admin/templates/initialize", h.InitializeTemplates)
}
