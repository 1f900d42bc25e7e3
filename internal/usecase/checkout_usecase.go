package usecase

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pwshop/internal/domain/model"
	repo "pwshop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// コード衝突時の再採番の上限。超えたら注文作成ごと失敗させる。
const maxCodeAttempts = 5

// チェックアウトフォームの検証。実装はvalidatorパッケージ。
type CheckoutValidator interface {
	ValidateCheckout(in CheckoutInput) error
}

// CheckoutUsecase はカートを注文に変換する（このリポジトリの中核）。
// ヘッダ作成・明細作成・在庫減算は1トランザクションで、部分コミットはしない。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	store     repo.CartStore
	validator CheckoutValidator
	logger    *zap.Logger
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	store repo.CartStore,
	validator CheckoutValidator,
	logger *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

type CheckoutInput struct {
	FullName      string
	Email         string
	Phone         string
	Address       string
	City          string
	State         string
	PostalCode    string
	PaymentMethod model.PaymentMethod
	Notes         string
}

// PW-YYYYMMDD-XXXX（XXXXはuuidの先頭2バイトを大文字hexで）
func generateOrderCode(now time.Time) string {
	id := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(id[:2]))
	return fmt.Sprintf("PW-%s-%s", now.Format("20060102"), suffix)
}

// PlaceOrder はカート全体を1注文としてコミットする。
// userIDがnilならゲスト注文（注文主なし）。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, sessionID string, userID *int64, in CheckoutInput) (OrderOutput, error) {
	if sessionID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "no session")
	}

	if err := u.validator.ValidateCheckout(in); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	if cart.IsEmpty() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	var out OrderOutput

	//注文処理はトランザクション。失敗したらヘッダ・明細・在庫減算を全部戻す。
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()

		header := model.Order{
			UserID:        userID,
			FullName:      in.FullName,
			Email:         in.Email,
			Phone:         in.Phone,
			Address:       in.Address,
			City:          in.City,
			State:         in.State,
			PostalCode:    in.PostalCode,
			PaymentMethod: in.PaymentMethod,
			Notes:         in.Notes,
			Total:         cart.Total(),
			Status:        model.OrderStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		//コードは採番後不変。衝突したら再採番（上限つき）。
		//INSERTの失敗でtx全体が中断状態にならないよう、試行ごとにSAVEPOINTで区切る。
		var orderID int64
		assigned := false
		for attempt := 0; attempt < maxCodeAttempts; attempt++ {
			header.Code = generateOrderCode(now)

			err := r.WithinSavepoint(ctx, func(sp repo.TxRepos) error {
				id, err := sp.Orders().Create(ctx, header)
				if err != nil {
					return err
				}
				orderID = id
				return nil
			})
			if err == repo.ErrConflict {
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			assigned = true
			break
		}
		if !assigned {
			return NewHTTPError(http.StatusInternalServerError, "could not assign order code")
		}

		//在庫を確定時に再チェックして減らす
		items := make([]model.OrderItem, 0, len(cart.Items))
		for _, ci := range cart.SortedItems() {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//条件付きUPDATE。足りなければ全体を中断する。
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, fmt.Sprintf(
					"insufficient stock for %s: available %d, requested %d",
					p.Name, p.Stock, ci.Quantity,
				))
			}

			//価格・名前はカート追加時点のスナップショットを使う
			items = append(items, model.OrderItem{
				ProductID:           ci.ProductID,
				ProductNameSnapshot: ci.Name,
				Size:                ci.Size,
				Quantity:            ci.Quantity,
				UnitPriceSnapshot:   ci.UnitPriceSnapshot,
				CreatedAt:           now,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		header.ID = orderID
		out = toOrderOutput(header, items)
		return nil
	})

	if err != nil {
		u.logger.Warn("checkout failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return OrderOutput{}, err
	}

	//コミット後にカートを空にする。ここで失敗しても注文は成立している。
	if err := u.store.Clear(ctx, sessionID); err != nil {
		u.logger.Warn("cart clear after checkout failed",
			zap.String("session_id", sessionID),
			zap.String("order_code", out.Code),
			zap.Error(err))
	}

	u.logger.Info("order placed",
		zap.Int64("order_id", out.ID),
		zap.String("order_code", out.Code),
		zap.Int64("total", out.Total),
		zap.Bool("guest", userID == nil))

	return out, nil
}
