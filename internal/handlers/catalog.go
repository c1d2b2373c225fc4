package handlers

import (
	"net/http"

	"smartq/internal/response"
	"smartq/internal/storage"

	"github.com/gin-gonic/gin"
)

// публичные коллекции справочника
var catalogCollections = map[string]bool{
	storage.CollectionCities:            true,
	storage.CollectionServiceCategories: true,
}

// GetCatalogHandler отдаёт справочник городов или категорий услуг
// @Summary		Справочник
// @Description	Список документов коллекции cities или service_categories_enhanced
// @Tags			catalog
// @Produce		json
// @Param			collection	path		string	true	"Коллекция"	Enums(cities, service_categories_enhanced)
// @Success		200			{array}		object					"Документы"
// @Failure		404			{object}	response.ErrorResponse	"Неизвестная коллекция (COLLECTION_NOT_FOUND)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка хранилища (STORE_ERROR)"
// @Router			/api/catalog/{collection} [get]
func (h *Handler) GetCatalogHandler(c *gin.Context) {
	collection := c.Param("collection")
	if !catalogCollections[collection] {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "COLLECTION_NOT_FOUND",
			Message: "Коллекция не найдена",
			Details: collection,
		})
		return
	}

	docs, err := h.Docs.List(c.Request.Context(), collection)
	if err != nil {
		h.logger().Error("catalog list failed", "collection", collection, "error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "STORE_ERROR",
			Message: "Ошибка при получении справочника",
		})
		return
	}
	c.JSON(http.StatusOK, docs)
}
