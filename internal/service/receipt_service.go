package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/storage"
	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

// ReceiptService implements the Connect ReceiptService.
type ReceiptService struct {
	apiconnect.UnimplementedReceiptServiceHandler
	store storage.ReceiptStore
}

// NewReceiptService creates a new ReceiptService with the given storage backend.
func NewReceiptService(store storage.ReceiptStore) *ReceiptService {
	return &ReceiptService{store: store}
}

// CreateReceipt stores a receipt, usually one extracted by OCR and reviewed
// by the user.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("CreateReceipt", err)
	}

	bill := billFromAPI("", req.Msg.Receipt)
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, toConnectError("CreateReceipt", err)
	}

	slog.Info("Receipt created",
		"receipt_id", bill.ID,
		"store", bill.StoreName,
		"items", len(bill.Items),
		"total", bill.Total,
	)
	return connect.NewResponse(&api.CreateReceiptResponse{ReceiptID: bill.ID}), nil
}

// UpdateReceipt overwrites a receipt. The item list is cleared and rebuilt
// from the request.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("UpdateReceipt", err)
	}

	bill := billFromAPI(req.Msg.ReceiptID, req.Msg.Receipt)
	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, toConnectError("UpdateReceipt", err)
	}

	slog.Info("Receipt updated", "receipt_id", bill.ID, "items", len(bill.Items))
	return connect.NewResponse(&api.UpdateReceiptResponse{ReceiptID: bill.ID}), nil
}

// GetReceipt retrieves a receipt with its items.
func (s *ReceiptService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("GetReceipt", err)
	}

	bill, err := s.store.GetBill(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, toConnectError("GetReceipt", err)
	}
	return connect.NewResponse(&api.GetReceiptResponse{Receipt: billToAPI(bill)}), nil
}

// DeleteReceipt removes a receipt and its items. Participants and splits
// recorded for it are left alone.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("DeleteReceipt", err)
	}

	if err := s.store.DeleteBill(ctx, req.Msg.ReceiptID); err != nil {
		return nil, toConnectError("DeleteReceipt", err)
	}

	slog.Info("Receipt deleted", "receipt_id", req.Msg.ReceiptID)
	return connect.NewResponse(&api.DeleteReceiptResponse{}), nil
}
