package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Inventory() InventoryRepository
	Products() ProductRepository
	AuditLogs() AuditLogRepository

	//SAVEPOINTで区切った部分区間。fnがerrorを返したらこの区間だけ巻き戻す。
	//PostgreSQLは文が失敗するとtx全体が中断状態になるので、
	//失敗を許して続行したい文はここで囲む。
	WithinSavepoint(ctx context.Context, fn func(r TxRepos) error) error
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したら全部ロールバックする。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
