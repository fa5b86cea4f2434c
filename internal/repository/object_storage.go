package repository

import "context"

// 画像バケットへの出し入れ。実装はMinIO。
type ObjectStorage interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}
