package repository

import (
	"context"
	"errors"
)

// ロック待ちタイムアウト等。呼び出し側がリトライしてよい
var ErrTransient = errors.New("transient storage error")

// CounterRepositoryは名前付き連番を発番する。
// Nextは行ロック下で current+1 を書き戻して返す。行が無ければ
// defaultBaseで作ってから発番するので、最初の値は defaultBase+1。
// 同時呼び出しは直列化され、重複値は返らない。
type CounterRepository interface {
	Next(ctx context.Context, counterType string, defaultBase int64) (int64, error)
}
