package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/allocation"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/money"
	"github.com/mmynk/splitter/pkg/api"
)

func billFromAPI(id string, r api.Receipt) *models.Bill {
	items := make([]models.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = models.Item{
			ID:          item.ID,
			Description: item.Description,
			Price:       money.FromFloat(item.Price),
		}
	}
	return &models.Bill{
		ID:           id,
		StoreName:    r.StoreName,
		StoreAddress: r.StoreAddress,
		Date:         r.Date,
		Time:         r.Time,
		Subtotal:     money.FromFloat(r.SubTotal),
		TaxTotal:     money.FromFloat(r.TaxTotal),
		Total:        money.FromFloat(r.Total),
		Items:        items,
	}
}

func billToAPI(b *models.Bill) api.Receipt {
	items := make([]api.Item, len(b.Items))
	for i, item := range b.Items {
		items[i] = api.Item{
			ID:          item.ID,
			Description: item.Description,
			Price:       money.ToFloat(item.Price),
		}
	}
	return api.Receipt{
		ReceiptID:    b.ID,
		StoreName:    b.StoreName,
		StoreAddress: b.StoreAddress,
		Date:         b.Date,
		Time:         b.Time,
		SubTotal:     money.ToFloat(b.Subtotal),
		TaxTotal:     money.ToFloat(b.TaxTotal),
		Total:        money.ToFloat(b.Total),
		Items:        items,
		CreatedAt:    b.CreatedAt,
	}
}

func participantFromAPI(p api.Participant) *models.Participant {
	out := &models.Participant{UserID: p.UserID, ReceiptID: p.ReceiptID, Name: p.Name}
	if p.Amount != nil {
		amount := money.FromFloat(*p.Amount)
		out.Amount = &amount
	}
	return out
}

func participantToAPI(p models.Participant) api.Participant {
	return api.Participant{
		UserID:    p.UserID,
		ReceiptID: p.ReceiptID,
		Name:      p.Name,
		Amount:    optionalFloat(p.Amount),
	}
}

func assignmentsFromAPI(splits []api.Split) []allocation.ItemAssignment {
	out := make([]allocation.ItemAssignment, len(splits))
	for i, s := range splits {
		shares := make([]allocation.ShareAssignment, len(s.Shares))
		for j, sh := range s.Shares {
			shares[j] = allocation.ShareAssignment{UserID: sh.UserID, Share: money.FromFloat(sh.Share)}
		}
		out[i] = allocation.ItemAssignment{
			ItemID:   s.ItemID,
			ItemName: s.ItemName,
			Price:    money.FromFloat(s.Price),
			Shares:   shares,
		}
	}
	return out
}

func shareToAPI(s models.Share) api.Share {
	return api.Share{
		ID:        s.ID,
		UserID:    s.UserID,
		Cost:      money.ToFloat(s.Cost),
		Share:     money.ToFloat(s.Share),
		ItemID:    s.ItemID,
		ReceiptID: s.ReceiptID,
	}
}

func reportToAPI(r *models.Report) *api.GetSplitReportResponse {
	participants := make([]api.ParticipantTotal, len(r.Participants))
	for i, p := range r.Participants {
		participants[i] = api.ParticipantTotal{
			UserID:    p.UserID,
			Subtotal:  money.ToFloat(p.Subtotal),
			Tax:       money.ToFloat(p.Tax),
			TotalCost: money.ToFloat(p.TotalCost),
			Paid:      optionalFloat(p.Paid),
			Balance:   optionalFloat(p.Balance),
		}
	}
	var settlements []api.Settlement
	for _, s := range r.Settlements {
		settlements = append(settlements, api.Settlement{
			FromUserID: s.FromUserID,
			ToUserID:   s.ToUserID,
			Amount:     money.ToFloat(s.Amount),
		})
	}
	return &api.GetSplitReportResponse{
		ReceiptID:    r.ReceiptID,
		Participants: participants,
		Subtotal:     money.ToFloat(r.Subtotal),
		Tax:          money.ToFloat(r.Tax),
		GrandTotal:   money.ToFloat(r.GrandTotal),
		Settlements:  settlements,
		Text:         r.String(),
	}
}

func optionalFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := money.ToFloat(*d)
	return &f
}
