package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
	storage    repo.ObjectStorage
	baseURL    string
	log        *zap.Logger
}

func NewCategoryUsecase(categories repo.CategoryRepository, storage repo.ObjectStorage, baseURL string, log *zap.Logger) *CategoryUsecase {
	return &CategoryUsecase{
		categories: categories,
		storage:    storage,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}

type CategoryInput struct {
	Name   string
	Status string

	// multipartで画像が来たときだけ入る
	ImageContent  []byte
	ImageFilename string
	ImageType     string
}

type CategoryOutput struct {
	ID        int64      `json:"id"`
	Name      string     `json:"category_name"`
	Status    string     `json:"status"`
	Date      *time.Time `json:"date"`
	Image     *string    `json:"image"`
	CreatedAt time.Time  `json:"created_at"`
}

func (u *CategoryUsecase) List(ctx context.Context) ([]CategoryOutput, error) {
	cats, err := u.categories.List(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	outs := make([]CategoryOutput, 0, len(cats))
	for _, c := range cats {
		outs = append(outs, u.toOutput(c))
	}
	return outs, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (CategoryOutput, error) {
	if id <= 0 {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return CategoryOutput{}, mapRepoError(err)
	}
	return u.toOutput(c), nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (CategoryOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "category_name required")
	}

	c := model.Category{
		Name:   strings.TrimSpace(in.Name),
		Status: in.Status,
	}
	if c.Status == "" {
		c.Status = "Active"
	}
	now := time.Now()
	c.Date = &now

	if len(in.ImageContent) > 0 {
		key := UploadKey("uploads/categories", in.ImageFilename)
		if err := u.storage.Put(ctx, key, in.ImageContent, in.ImageType); err != nil {
			return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "image upload failed")
		}
		c.Image = &key
	}

	created, err := u.categories.Create(ctx, c)
	if err != nil {
		return CategoryOutput{}, mapRepoError(err)
	}
	return u.toOutput(created), nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) (CategoryOutput, error) {
	if id <= 0 {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return CategoryOutput{}, mapRepoError(err)
	}

	if strings.TrimSpace(in.Name) != "" {
		existing.Name = strings.TrimSpace(in.Name)
	}
	if in.Status != "" {
		existing.Status = in.Status
	}

	if len(in.ImageContent) > 0 {
		key := UploadKey("uploads/categories", in.ImageFilename)
		if err := u.storage.Put(ctx, key, in.ImageContent, in.ImageType); err != nil {
			return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "image upload failed")
		}
		//古い画像はベストエフォートで片付ける
		if existing.Image != nil && *existing.Image != "" {
			if err := u.storage.Remove(ctx, *existing.Image); err != nil {
				u.log.Warn("old category image cleanup failed",
					zap.String("key", *existing.Image), zap.Error(err))
			}
		}
		existing.Image = &key
	}

	if err := u.categories.Update(ctx, existing); err != nil {
		return CategoryOutput{}, mapRepoError(err)
	}
	return u.toOutput(existing), nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}
	if err := u.categories.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	if existing.Image != nil && *existing.Image != "" {
		if err := u.storage.Remove(ctx, *existing.Image); err != nil {
			u.log.Warn("category image cleanup failed",
				zap.String("key", *existing.Image), zap.Error(err))
		}
	}
	return nil
}

func (u *CategoryUsecase) toOutput(c model.Category) CategoryOutput {
	out := CategoryOutput{
		ID:        c.ID,
		Name:      c.Name,
		Status:    c.Status,
		Date:      c.Date,
		CreatedAt: c.CreatedAt,
	}
	if c.Image != nil && *c.Image != "" {
		full := u.baseURL + "/images/" + url.PathEscape(*c.Image)
		out.Image = &full
	}
	return out
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// オブジェクトキーは タイムスタンプ-uuid-元ファイル名 で衝突しないようにする
func UploadKey(prefix string, filename string) string {
	ext := path.Ext(filename)
	base := strings.TrimSuffix(path.Base(filename), ext)
	safe := unsafeKeyChars.ReplaceAllString(base, "-")
	if safe == "" {
		safe = "file"
	}
	return fmt.Sprintf("%s/%d-%s-%s%s", prefix, time.Now().UnixMilli(), uuid.NewString(), safe, strings.ToLower(ext))
}
