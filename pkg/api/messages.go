// Package api defines the request and response messages of the splitter
// services. Messages travel as JSON; amounts are plain numbers on the wire
// and become exact decimals once they reach the service layer.
package api

// Item is one line of a receipt.
type Item struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// Receipt is a bill with its items.
type Receipt struct {
	ReceiptID    string  `json:"receiptId,omitempty"`
	StoreName    string  `json:"storeName"`
	StoreAddress string  `json:"storeAddress"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	SubTotal     float64 `json:"subTotal" validate:"gte=0"`
	TaxTotal     float64 `json:"taxTotal" validate:"gte=0"`
	Total        float64 `json:"total" validate:"gte=0"`
	Items        []Item  `json:"items" validate:"dive"`
	CreatedAt    int64   `json:"createdAt,omitempty"`
}

type CreateReceiptRequest struct {
	Receipt Receipt `json:"receipt"`
}

type CreateReceiptResponse struct {
	ReceiptID string `json:"receiptId"`
}

// UpdateReceiptRequest replaces the header fields and the whole item list
// of an existing receipt.
type UpdateReceiptRequest struct {
	ReceiptID string  `json:"receiptId" validate:"required"`
	Receipt   Receipt `json:"receipt"`
}

type UpdateReceiptResponse struct {
	ReceiptID string `json:"receiptId"`
}

type GetReceiptRequest struct {
	ReceiptID string `json:"receiptId" validate:"required"`
}

type GetReceiptResponse struct {
	Receipt Receipt `json:"receipt"`
}

type DeleteReceiptRequest struct {
	ReceiptID string `json:"receiptId" validate:"required"`
}

type DeleteReceiptResponse struct{}

// Participant is a person sharing a receipt. Amount is what they have
// already paid towards it, if anything.
type Participant struct {
	UserID    string   `json:"userId" validate:"required"`
	ReceiptID string   `json:"receiptId" validate:"required"`
	Name      string   `json:"name"`
	Amount    *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
}

type UpsertParticipantsRequest struct {
	Participants []Participant `json:"participants" validate:"required,min=1,dive"`
}

type UpsertParticipantsResponse struct {
	Count int `json:"count"`
}

type ListParticipantsRequest struct {
	ReceiptID string `json:"receiptId" validate:"required"`
}

type ListParticipantsResponse struct {
	Participants []Participant `json:"participants"`
	Empty        bool          `json:"empty"`
}

type DeleteParticipantRequest struct {
	ReceiptID string `json:"receiptId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
}

type DeleteParticipantResponse struct{}

// ShareAssignment is one participant's relative weight for an item.
type ShareAssignment struct {
	UserID string  `json:"userId" validate:"required"`
	Share  float64 `json:"share" validate:"gte=0"`
}

// Split assigns an item to participants.
type Split struct {
	ItemID   string            `json:"itemId" validate:"required"`
	ItemName string            `json:"itemName"`
	Price    float64           `json:"price" validate:"gte=0"`
	Shares   []ShareAssignment `json:"shares" validate:"dive"`
}

type ShareBillRequest struct {
	ReceiptID string  `json:"receiptId" validate:"required"`
	Splits    []Split `json:"splits" validate:"required,min=1,dive"`
}

type ShareBillResponse struct {
	Items int `json:"items"`
}

// Share is a stored share with its computed cost.
type Share struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Cost      float64 `json:"cost"`
	Share     float64 `json:"share"`
	ItemID    string  `json:"itemId"`
	ReceiptID string  `json:"receiptId"`
}

type GetBillShareRequest struct {
	ReceiptID string `json:"receiptId" validate:"required"`
}

type GetBillShareResponse struct {
	Shares []Share `json:"shares"`
	Empty  bool    `json:"empty"`
}

type ParticipantTotal struct {
	UserID    string   `json:"userId"`
	Subtotal  float64  `json:"subtotal"`
	Tax       float64  `json:"tax"`
	TotalCost float64  `json:"totalCost"`
	Paid      *float64 `json:"paid,omitempty"`
	Balance   *float64 `json:"balance,omitempty"`
}

type Settlement struct {
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	Amount     float64 `json:"amount"`
}

type GetSplitReportRequest struct {
	ReceiptID string `json:"receiptId" validate:"required"`
}

// GetSplitReportResponse carries the report both as data and as the
// rendered text summary.
type GetSplitReportResponse struct {
	ReceiptID    string             `json:"receiptId"`
	Participants []ParticipantTotal `json:"participants"`
	Subtotal     float64            `json:"subtotal"`
	Tax          float64            `json:"tax"`
	GrandTotal   float64            `json:"grandTotal"`
	Settlements  []Settlement       `json:"settlements,omitempty"`
	Text         string             `json:"text"`
}
