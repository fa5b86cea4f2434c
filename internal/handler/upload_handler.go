package handler

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/uploads と /images/* 。アップロードはスタッフ専用、配信は公開。
// バケットは外に出さず、画像はここを経由して返す
type UploadHandler struct {
	storage repo.ObjectStorage
	baseURL string
}

func NewUploadHandler(storage repo.ObjectStorage, baseURL string) *UploadHandler {
	return &UploadHandler{storage: storage, baseURL: strings.TrimRight(baseURL, "/")}
}

func (h *UploadHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, staff echo.MiddlewareFunc) {
	e.POST("/api/uploads", h.upload, auth, staff)
	e.GET("/images/*", h.serve)
}

// multipartのfilesフィールド（複数可）をバケットに入れてキーとURLを返す
func (h *UploadHandler) upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "multipart form required"})
	}
	files := form.File["files"]
	if len(files) == 0 {
		if single := form.File["file"]; len(single) > 0 {
			files = single
		}
	}
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no files"})
	}

	type uploaded struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	out := make([]uploaded, 0, len(files))

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "broken upload"})
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "broken upload"})
		}

		key := usecase.UploadKey("uploads/products", fh.Filename)
		if err := h.storage.Put(c.Request().Context(), key, content, fh.Header.Get("Content-Type")); err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "upload failed"})
		}
		out = append(out, uploaded{
			Key: key,
			URL: h.baseURL + "/images/" + url.PathEscape(key),
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"files": out})
}

// バケットのオブジェクトをそのまま返すプロキシ
func (h *UploadHandler) serve(c echo.Context) error {
	key := c.Param("*")
	if dec, err := url.PathUnescape(key); err == nil {
		key = dec
	}
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid key"})
	}

	content, contentType, err := h.storage.Get(c.Request().Context(), key)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, contentType, content)
}
