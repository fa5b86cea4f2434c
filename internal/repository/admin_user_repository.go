package repository

import (
	"context"

	"app/internal/domain/model"
)

type AdminUserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.AdminUser, error)
	Create(ctx context.Context, u model.AdminUser) (model.AdminUser, error)

	// 通知の宛先。role ADMIN/STAFF かつ email ありのアドレス一覧
	ListNotifiableEmails(ctx context.Context) ([]string, error)
}
