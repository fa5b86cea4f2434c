package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	Products() ProductRepository
	Counters() CounterRepository
	Shipments() ShipmentRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したら必ずrollbackされる（部分書き込みは残さない）。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
