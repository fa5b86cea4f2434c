package usecase

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	products repo.ProductRepository
	baseURL  string
}

func NewProductUsecase(products repo.ProductRepository, baseURL string) *ProductUsecase {
	return &ProductUsecase{products: products, baseURL: strings.TrimRight(baseURL, "/")}
}

type ProductInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	HSN         *string  `json:"hsn"`
	Status      string   `json:"status"`
	Units       string   `json:"units"`
	Weight      string   `json:"weight"`
	Price       float64  `json:"price"`
	SalePrice   float64  `json:"sale_price"`
	Stock       int64    `json:"stock"`
	Image1      *string  `json:"image1"`
	Image2      *string  `json:"image2"`
	Image3      *string  `json:"image3"`
	Image4      *string  `json:"image4"`
	Image5      *string  `json:"image5"`
	Image6      *string  `json:"image6"`
	Video       *string  `json:"video"`
}

type ProductOutput struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	HSN         *string   `json:"hsn"`
	Status      string    `json:"status"`
	Units       string    `json:"units"`
	Weight      string    `json:"weight"`
	Price       float64   `json:"price"`
	SalePrice   float64   `json:"sale_price"`
	Stock       int64     `json:"stock"`
	Image1      *string   `json:"image1"`
	Image2      *string   `json:"image2"`
	Image3      *string   `json:"image3"`
	Image4      *string   `json:"image4"`
	Image5      *string   `json:"image5"`
	Image6      *string   `json:"image6"`
	Video       *string   `json:"video"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *ProductUsecase) List(ctx context.Context, status string) ([]ProductOutput, error) {
	if status == "" {
		status = "Active"
	}
	products, err := u.products.ListByStatus(ctx, status)
	if err != nil {
		return nil, mapRepoError(err)
	}
	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, u.toOutput(p))
	}
	return outs, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (ProductOutput, error) {
	if id <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return ProductOutput{}, mapRepoError(err)
	}
	return u.toOutput(p), nil
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (ProductOutput, error) {
	if strings.TrimSpace(in.Title) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.Price < 0 || in.SalePrice < 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	p := u.fromInput(in)
	if p.Status == "" {
		p.Status = "Active"
	}
	created, err := u.products.Create(ctx, p)
	if err != nil {
		return ProductOutput{}, mapRepoError(err)
	}
	return u.toOutput(created), nil
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in ProductInput) (ProductOutput, error) {
	if id <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Title) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "title required")
	}

	existing, err := u.products.FindByID(ctx, id)
	if err != nil {
		return ProductOutput{}, mapRepoError(err)
	}

	p := u.fromInput(in)
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	if p.Status == "" {
		p.Status = existing.Status
	}
	if err := u.products.Update(ctx, p); err != nil {
		return ProductOutput{}, mapRepoError(err)
	}
	return u.toOutput(p), nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (u *ProductUsecase) fromInput(in ProductInput) model.Product {
	return model.Product{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		HSN:         in.HSN,
		Status:      in.Status,
		Units:       in.Units,
		Weight:      in.Weight,
		Price:       in.Price,
		SalePrice:   in.SalePrice,
		Stock:       in.Stock,
		Image1:      normalizeImageKey(in.Image1),
		Image2:      normalizeImageKey(in.Image2),
		Image3:      normalizeImageKey(in.Image3),
		Image4:      normalizeImageKey(in.Image4),
		Image5:      normalizeImageKey(in.Image5),
		Image6:      normalizeImageKey(in.Image6),
		Video:       normalizeImageKey(in.Video),
	}
}

func (u *ProductUsecase) toOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		HSN:         p.HSN,
		Status:      p.Status,
		Units:       p.Units,
		Weight:      p.Weight,
		Price:       p.Price,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		Image1:      u.imageURL(p.Image1),
		Image2:      u.imageURL(p.Image2),
		Image3:      u.imageURL(p.Image3),
		Image4:      u.imageURL(p.Image4),
		Image5:      u.imageURL(p.Image5),
		Image6:      u.imageURL(p.Image6),
		Video:       u.imageURL(p.Video),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// DBにはオブジェクトキーだけを持つ。クライアントがフルURLで送り返して
// きても（編集画面の保存など）キーに戻して保存する。
func normalizeImageKey(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	if i := strings.Index(s, "/images/"); i >= 0 && strings.Contains(s, "://") {
		if dec, err := url.PathUnescape(s[i+len("/images/"):]); err == nil {
			s = dec
		} else {
			s = s[i+len("/images/"):]
		}
	}
	return &s
}

func (u *ProductUsecase) imageURL(key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	full := u.baseURL + "/images/" + url.PathEscape(*key)
	return &full
}
