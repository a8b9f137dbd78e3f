package dto

import (
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BookingFinancedRequest is the inbound payload from the booking subsystem
// when a booking's financial fields are finalized or change.
type BookingFinancedRequest struct {
	BookingID          string          `json:"bookingID" binding:"required"`
	PropertyID         string          `json:"propertyID" binding:"required"`
	CheckIn            time.Time       `json:"checkIn" binding:"required"`
	CheckOut           time.Time       `json:"checkOut"`
	GuestName          string          `json:"guestName"`
	Nights             int             `json:"nights"`
	GrossRevenue       decimal.Decimal `json:"grossRevenue"`
	PlatformCommission decimal.Decimal `json:"platformCommission"`
	CleaningFee        decimal.Decimal `json:"cleaningFee"`
}

// ToDomain converts the request into the domain event.
func (r BookingFinancedRequest) ToDomain() domain.BookingFinanced {
	return domain.BookingFinanced{
		BookingID:          r.BookingID,
		PropertyID:         r.PropertyID,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		GuestName:          r.GuestName,
		Nights:             r.Nights,
		GrossRevenue:       r.GrossRevenue,
		PlatformCommission: r.PlatformCommission,
		CleaningFee:        r.CleaningFee,
	}
}

// ExpenseRecordedRequest is the inbound payload from the expense subsystem.
type ExpenseRecordedRequest struct {
	ExpenseID   string          `json:"expenseID" binding:"required"`
	PropertyID  string          `json:"propertyID" binding:"required"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	VATAmount   decimal.Decimal `json:"vatAmount"`
}

// ToDomain converts the request into the domain event.
func (r ExpenseRecordedRequest) ToDomain() domain.ExpenseRecorded {
	return domain.ExpenseRecorded{
		ExpenseID:   r.ExpenseID,
		PropertyID:  r.PropertyID,
		ExpenseDate: r.ExpenseDate,
		Vendor:      r.Vendor,
		Description: r.Description,
		Amount:      r.Amount,
		VATAmount:   r.VATAmount,
	}
}

// DepositTransactionRequest is the inbound payload for a security-deposit
// movement against a tenancy.
type DepositTransactionRequest struct {
	TenancyID       string                        `json:"tenancyID" binding:"required"`
	Type            domain.DepositTransactionType `json:"type" binding:"required,deposittxntype"`
	Amount          decimal.Decimal               `json:"amount" binding:"required"`
	TransactionDate time.Time                     `json:"transactionDate" binding:"required"`
	Description     string                        `json:"description"`
	DeductionReason *domain.DeductionReason       `json:"deductionReason" binding:"omitempty,deductionreason"`
}

// ToDomain converts the request into the domain event. PropertyID is left
// empty; the posting service fills it from the tenancy record.
func (r DepositTransactionRequest) ToDomain() domain.DepositTransactionRecorded {
	return domain.DepositTransactionRecorded{
		TenancyID:       r.TenancyID,
		Type:            r.Type,
		Amount:          r.Amount,
		TransactionDate: r.TransactionDate,
		Description:     r.Description,
		DeductionReason: r.DeductionReason,
	}
}

// DepositTransactionResponse is the outbound representation of a recorded
// deposit movement.
type DepositTransactionResponse struct {
	TransactionID   string                        `json:"transactionID"`
	TenancyID       string                        `json:"tenancyID"`
	PropertyID      string                        `json:"propertyID"`
	Type            domain.DepositTransactionType `json:"type"`
	Amount          decimal.Decimal               `json:"amount"`
	TransactionDate time.Time                     `json:"transactionDate"`
	Description     string                        `json:"description,omitempty"`
	DeductionReason *domain.DeductionReason       `json:"deductionReason,omitempty"`
	JournalEntryID  string                        `json:"journalEntryID"`
	CreatedAt       time.Time                     `json:"createdAt"`
}

// ToDepositTransactionResponses maps deposit transactions for listing.
func ToDepositTransactionResponses(txns []domain.DepositTransaction) []DepositTransactionResponse {
	out := make([]DepositTransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = DepositTransactionResponse{
			TransactionID:   t.TransactionID,
			TenancyID:       t.TenancyID,
			PropertyID:      t.PropertyID,
			Type:            t.Type,
			Amount:          t.Amount,
			TransactionDate: t.TransactionDate,
			Description:     t.Description,
			DeductionReason: t.DeductionReason,
			JournalEntryID:  t.JournalEntryID,
			CreatedAt:       t.CreatedAt,
		}
	}
	return out
}
