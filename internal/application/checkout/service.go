package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"secondmarket-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service turns a submitted line list into a persisted order and owns the
// order read/status paths.
type Service struct {
	DB *gorm.DB
	// OrderNumber generates the unique order reference. Overridable so
	// tests can force collisions; nil uses the default generator.
	OrderNumber func() string
}

// Item is one checkout line. Price is the client-supplied unit price: the
// order total is computed from it, not re-derived from the listing.
type Item struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Receipt is the checkout response body.
type Receipt struct {
	OrderID     uint    `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	Message     string  `json:"message"`
}

// Checkout inserts the order and its lines and clears the entire cart in
// one transaction. Any failure rolls back fully: no order without lines,
// no emptied cart without an order.
func (s *Service) Checkout(ctx context.Context, userID uint, items []Item, shipping, payment json.RawMessage) (*Receipt, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	number := s.newOrderNumber()

	order := &models.Order{
		UserID:          userID,
		OrderNumber:     number,
		Status:          models.OrderPending,
		TotalAmount:     total,
		ShippingAddress: datatypes.JSON(shipping),
		PaymentInfo:     datatypes.JSON(payment),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, it := range items {
			line := &models.OrderItem{
				OrderID:    order.ID,
				ListingID:  it.ProductID,
				Quantity:   it.Quantity,
				UnitPrice:  it.Price,
				TotalPrice: it.Price * float64(it.Quantity),
			}
			if err := tx.Create(line).Error; err != nil {
				return err
			}
		}
		// The whole cart empties, not just the checked-out lines.
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("checkout transaction failed")
		return nil, ErrCheckoutFailed
	}

	return &Receipt{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Message:     "Order placed successfully!",
	}, nil
}

// ListOrders returns the buyer's orders newest-first. JSON columns come
// back structured, not as strings.
func (s *Service) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// LineView is an order line enriched with live listing display fields.
// Prices stay frozen at order time; title/image/seller reflect the listing
// as it exists now, degrading to placeholders when it is gone.
type LineView struct {
	ID         uint    `json:"id"`
	ListingID  uint    `json:"listing_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	Title      string  `json:"title"`
	Image      *string `json:"image"`
	SellerName string  `json:"seller_name"`
}

// OrderDetail is an order plus its enriched lines.
type OrderDetail struct {
	models.Order
	Items []LineView `json:"items"`
}

type lineRow struct {
	ID         uint
	ListingID  uint
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
	Title      *string
	Images     *string
	SellerName *string
}

// GetOrder returns one of the caller's orders with line detail. Orders
// belonging to someone else are indistinguishable from absent ones.
func (s *Service) GetOrder(ctx context.Context, userID, orderID uint) (*OrderDetail, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	var rows []lineRow
	err = s.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select(`order_items.id, order_items.listing_id, order_items.quantity,
			order_items.unit_price, order_items.total_price,
			listings.title AS title, listings.images AS images, users.name AS seller_name`).
		Joins("LEFT JOIN listings ON listings.id = order_items.listing_id").
		Joins("LEFT JOIN users ON users.id = listings.user_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{Order: order, Items: make([]LineView, 0, len(rows))}
	for _, r := range rows {
		view := LineView{
			ID:         r.ID,
			ListingID:  r.ListingID,
			Quantity:   r.Quantity,
			UnitPrice:  r.UnitPrice,
			TotalPrice: r.TotalPrice,
			Title:      "Unknown Product",
			SellerName: "Unknown Seller",
		}
		if r.Title != nil {
			view.Title = *r.Title
		}
		if r.SellerName != nil {
			view.SellerName = *r.SellerName
		}
		if r.Images != nil {
			var arr []string
			if json.Unmarshal([]byte(*r.Images), &arr) == nil && len(arr) > 0 {
				view.Image = &arr[0]
			}
		}
		detail.Items = append(detail.Items, view)
	}
	return detail, nil
}

// statusRank orders the one-directional lifecycle; cancelled sits outside
// the chain and is reachable from any non-terminal state.
var statusRank = map[string]int{
	models.OrderPending:    0,
	models.OrderProcessing: 1,
	models.OrderShipped:    2,
	models.OrderDelivered:  3,
}

// UpdateStatus transitions one of the caller's orders. The buyer (order
// owner) holds transition rights.
func (s *Service) UpdateStatus(ctx context.Context, userID, orderID uint, newStatus string) error {
	valid := false
	for _, st := range models.OrderStatuses {
		if st == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidStatus
	}

	var order models.Order
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if order.Status == models.OrderDelivered || order.Status == models.OrderCancelled {
		return ErrInvalidTransition
	}
	if newStatus != models.OrderCancelled && statusRank[newStatus] <= statusRank[order.Status] {
		return ErrInvalidTransition
	}

	return s.DB.WithContext(ctx).Model(&order).
		Updates(map[string]interface{}{"status": newStatus, "updated_at": time.Now()}).Error
}

func (s *Service) newOrderNumber() string {
	if s.OrderNumber != nil {
		return s.OrderNumber()
	}
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
