package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/allocation"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/storage"
	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

// SplitService implements the Connect SplitService: the participant
// registry and the allocation engine.
type SplitService struct {
	apiconnect.UnimplementedSplitServiceHandler
	participants storage.ParticipantRegistry
	engine       *allocation.Engine
}

// NewSplitService creates a new SplitService.
func NewSplitService(participants storage.ParticipantRegistry, engine *allocation.Engine) *SplitService {
	return &SplitService{participants: participants, engine: engine}
}

// UpsertParticipants attaches participants to receipts. Submitting the same
// (receiptId, userId) again replaces the stored record.
func (s *SplitService) UpsertParticipants(ctx context.Context, req *connect.Request[api.UpsertParticipantsRequest]) (*connect.Response[api.UpsertParticipantsResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("UpsertParticipants", err)
	}

	for _, p := range req.Msg.Participants {
		slog.Debug("Upserting participant", "receipt_id", p.ReceiptID, "user_id", p.UserID, "name", p.Name)
		if err := s.participants.UpsertParticipant(ctx, participantFromAPI(p)); err != nil {
			return nil, toConnectError("UpsertParticipants", err)
		}
	}

	slog.Info("Participants upserted", "count", len(req.Msg.Participants))
	return connect.NewResponse(&api.UpsertParticipantsResponse{Count: len(req.Msg.Participants)}), nil
}

// ListParticipants returns the participants of a receipt. No participants is
// an empty success, flagged by Empty.
func (s *SplitService) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("ListParticipants", err)
	}

	participants, err := s.participants.ListParticipants(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, toConnectError("ListParticipants", err)
	}

	out := make([]api.Participant, len(participants))
	for i, p := range participants {
		out[i] = participantToAPI(p)
	}
	return connect.NewResponse(&api.ListParticipantsResponse{
		Participants: out,
		Empty:        len(out) == 0,
	}), nil
}

// DeleteParticipant detaches a user from a receipt. A user ID unknown to
// every receipt is rejected; one known elsewhere but not on this receipt is
// a no-op.
func (s *SplitService) DeleteParticipant(ctx context.Context, req *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("DeleteParticipant", err)
	}

	exists, err := s.participants.ParticipantExists(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError("DeleteParticipant", fmt.Errorf("failed to check participant: %w", err))
	}
	if !exists {
		return nil, toConnectError("DeleteParticipant", &models.ValidationError{
			Field:  "user_id",
			ID:     req.Msg.UserID,
			Reason: "does not exist in participants",
		})
	}

	if err := s.participants.DeleteParticipant(ctx, req.Msg.ReceiptID, req.Msg.UserID); err != nil {
		return nil, toConnectError("DeleteParticipant", err)
	}

	slog.Info("Participant deleted", "receipt_id", req.Msg.ReceiptID, "user_id", req.Msg.UserID)
	return connect.NewResponse(&api.DeleteParticipantResponse{}), nil
}

// ShareBill assigns items to participants and stores the computed costs.
func (s *SplitService) ShareBill(ctx context.Context, req *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("ShareBill", err)
	}

	if err := s.engine.ShareBill(ctx, req.Msg.ReceiptID, assignmentsFromAPI(req.Msg.Splits)); err != nil {
		return nil, toConnectError("ShareBill", err)
	}
	return connect.NewResponse(&api.ShareBillResponse{Items: len(req.Msg.Splits)}), nil
}

// GetBillShare returns the stored shares of a receipt.
func (s *SplitService) GetBillShare(ctx context.Context, req *connect.Request[api.GetBillShareRequest]) (*connect.Response[api.GetBillShareResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("GetBillShare", err)
	}

	shares, err := s.engine.GetBillShare(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, toConnectError("GetBillShare", err)
	}

	out := make([]api.Share, len(shares))
	for i, sh := range shares {
		out[i] = shareToAPI(sh)
	}
	return connect.NewResponse(&api.GetBillShareResponse{Shares: out, Empty: len(out) == 0}), nil
}

// GetSplitReport returns what each participant owes for a receipt.
func (s *SplitService) GetSplitReport(ctx context.Context, req *connect.Request[api.GetSplitReportRequest]) (*connect.Response[api.GetSplitReportResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError("GetSplitReport", err)
	}

	report, err := s.engine.GetShareReport(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, toConnectError("GetSplitReport", err)
	}

	slog.Debug("Split report",
		"receipt_id", report.ReceiptID,
		"participants", len(report.Participants),
		"grand_total", report.GrandTotal,
	)
	return connect.NewResponse(reportToAPI(report)), nil
}
