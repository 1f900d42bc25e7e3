package repository

import (
	"context"

	"pwshop/internal/domain/model"
)

// セッションスコープのカート保存先。
// カートはDBに永続化しない。注文になるまではセッション状態。
type CartStore interface {
	//無ければ空のカートを返す
	Get(ctx context.Context, sessionID string) (model.Cart, error)

	Save(ctx context.Context, sessionID string, cart model.Cart) error
	Clear(ctx context.Context, sessionID string) error
}
