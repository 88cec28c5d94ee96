package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"go-topup-store/internal/model"
	"go-topup-store/internal/repository"
	"go-topup-store/internal/ws"
	"go-topup-store/pkg/validator"
	"go-topup-store/pkg/whatsapp"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error)
	CheckStatus(sn string) (*model.Order, error)
	ListOrders(search string) ([]model.Order, error)
	UpdateStatus(sn string, status model.OrderStatus, updatedBy string) (bool, error)
	GetStats() (*repository.OrderStats, error)
}

type PlaceOrderRequest struct {
	GameID   string `json:"game_id" validate:"required"`
	PlayerID string `json:"player_id" validate:"required"`
	Server   string `json:"server"`
	Nominal  string `json:"nominal" validate:"required"`
}

type PlaceOrderResponse struct {
	Order       model.Order `json:"order"`
	WhatsAppURL string      `json:"whatsapp_url"`
}

type orderService struct {
	orderRepo  repository.OrderRepository
	catalog    CatalogService
	wsHub      *ws.Hub
	adminPhone string
}

// NewOrderService wires order persistence, the catalog (to resolve game ids
// to display names) and the store admin's WhatsApp number for hand-off links.
func NewOrderService(orderRepo repository.OrderRepository, catalog CatalogService, hub *ws.Hub, adminPhone string) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		catalog:    catalog,
		wsHub:      hub,
		adminPhone: adminPhone,
	}
}

// GenerateSN returns a new order serial number: "TOPUP-" plus six random
// digits. Uniqueness is not checked; lookups act on the first match.
func GenerateSN() string {
	return fmt.Sprintf("TOPUP-%06d", rand.Intn(1000000))
}

func (s *orderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	// Reject before persisting anything; no partial order survives a bad form.
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	game, err := s.catalog.GetGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	server := req.Server
	if server == "" {
		server = "N/A"
	}

	order := model.Order{
		SN:       GenerateSN(),
		Game:     game.Name,
		PlayerID: req.PlayerID,
		Server:   server,
		Nominal:  req.Nominal,
		Status:   model.StatusPending,
	}
	order.CreatedBy = "storefront"
	order.UpdatedBy = "storefront"

	if err := s.orderRepo.Create(&order); err != nil {
		return nil, err
	}

	s.broadcast(map[string]interface{}{
		"type":   "order_update",
		"action": "order_created",
		"order": map[string]interface{}{
			"sn":      order.SN,
			"game":    order.Game,
			"nominal": order.Nominal,
			"status":  order.Status,
		},
	})

	waURL := whatsapp.OrderLink(s.adminPhone, whatsapp.OrderSummary{
		Game:     order.Game,
		PlayerID: order.PlayerID,
		Server:   order.Server,
		Nominal:  order.Nominal,
		SN:       order.SN,
	})

	return &PlaceOrderResponse{Order: order, WhatsAppURL: waURL}, nil
}

func (s *orderService) CheckStatus(sn string) (*model.Order, error) {
	order, err := s.orderRepo.FindBySN(sn)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(search string) ([]model.Order, error) {
	return s.orderRepo.SearchBySN(search)
}

// UpdateStatus sets the status of the first order matching sn. An unknown sn
// reports updated=false without an error; no transition ordering is enforced.
func (s *orderService) UpdateStatus(sn string, status model.OrderStatus, updatedBy string) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidStatus
	}

	updated, err := s.orderRepo.UpdateStatus(sn, status, updatedBy)
	if err != nil {
		return false, err
	}

	if updated {
		s.broadcast(map[string]interface{}{
			"type":   "order_update",
			"action": "order_status_changed",
			"order": map[string]interface{}{
				"sn":     sn,
				"status": status,
			},
			"updated_by": updatedBy,
		})
	}

	return updated, nil
}

func (s *orderService) GetStats() (*repository.OrderStats, error) {
	return s.orderRepo.GetStats()
}

func (s *orderService) broadcast(payload map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
