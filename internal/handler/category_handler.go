package handler

import (
	"io"
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/categories のカテゴリAPI。画像つきなのでmultipartを受ける
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, staff echo.MiddlewareFunc) {
	g := e.Group("/api/categories")

	g.GET("/all", h.list)
	g.GET("/:id", h.detail)

	g.POST("/create", h.create, auth, staff)
	g.PUT("/update/:id", h.update, auth, staff)
	g.DELETE("/delete/:id", h.remove, auth, staff)
}

func (h *CategoryHandler) list(c echo.Context) error {
	outs, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) create(c echo.Context) error {
	in, err := h.bindMultipart(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	out, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	in, err := h.bindMultipart(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	out, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// form値と画像ファイル（任意）を読む
func (h *CategoryHandler) bindMultipart(c echo.Context) (usecase.CategoryInput, error) {
	in := usecase.CategoryInput{
		Name:   c.FormValue("category_name"),
		Status: c.FormValue("status"),
	}

	fh, err := c.FormFile("image")
	if err != nil {
		//画像なしは許容
		return in, nil
	}
	src, err := fh.Open()
	if err != nil {
		return in, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return in, err
	}
	in.ImageContent = content
	in.ImageFilename = fh.Filename
	in.ImageType = fh.Header.Get("Content-Type")
	return in, nil
}
