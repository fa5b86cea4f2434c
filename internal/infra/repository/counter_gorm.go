package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CounterGormRepository struct {
	db *gorm.DB
}

func NewCounterGormRepository(db *gorm.DB) *CounterGormRepository {
	return &CounterGormRepository{db: db}
}

// Nextは行ロック下で発番する。呼び出し側のトランザクション内で使うこと
// （TxReposから取った場合はtxのDBハンドルになっている）。
func (r *CounterGormRepository) Next(ctx context.Context, counterType string, defaultBase int64) (int64, error) {
	var c model.Counter
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("type = ?", counterType).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		//初回は基準値で行を作る
		c = model.Counter{Type: counterType, Value: defaultBase}
		if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
			return 0, mapPgError(err)
		}
	} else if err != nil {
		return 0, mapPgError(err)
	}

	next := c.Value + 1
	res := r.db.WithContext(ctx).
		Model(&model.Counter{}).
		Where("type = ?", counterType).
		Update("value", next)
	if res.Error != nil {
		return 0, mapPgError(res.Error)
	}

	return next, nil
}

// ロック待ち/デッドロックはリトライ可能なエラーに読み替える
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "40P01", "40001": // lock_not_available / deadlock / serialization
			return fmt.Errorf("%w: %s", repo.ErrTransient, pgErr.Code)
		}
	}
	return err
}
