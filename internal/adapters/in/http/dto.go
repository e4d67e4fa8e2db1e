package http

import (
	"time"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/payment"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Amounts travel as decimal strings ("15000.00") next to an ISO currency code.

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoney(m kernel.Money) Money {
	return Money{Amount: m.StringFixed(), Currency: m.Currency()}
}

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type BorrowBookRequest struct {
	MemberID openapi_types.UUID `json:"memberId"`
	BookID   openapi_types.UUID `json:"bookId"`
	LoanDays int                `json:"loanDays"`
}

type ExtendLoanRequest struct {
	AdditionalDays int `json:"additionalDays"`
}

type Loan struct {
	ID          openapi_types.UUID `json:"id"`
	MemberID    openapi_types.UUID `json:"memberId"`
	BookID      openapi_types.UUID `json:"bookId"`
	LoanDate    time.Time          `json:"loanDate"`
	DueDate     time.Time          `json:"dueDate"`
	ReturnDate  *time.Time         `json:"returnDate"`
	Status      string             `json:"status"`
	OverdueDays int                `json:"overdueDays"`
	OverdueFee  Money              `json:"overdueFee"`
}

func toLoan(v queries.LoanView) Loan {
	return Loan{
		ID:          v.ID.Bytes(),
		MemberID:    v.MemberID.Bytes(),
		BookID:      v.BookID.Bytes(),
		LoanDate:    v.LoanDate,
		DueDate:     v.DueDate,
		ReturnDate:  v.ReturnDate,
		Status:      v.Status.String(),
		OverdueDays: v.OverdueDays,
		OverdueFee:  toMoney(v.OverdueFee),
	}
}

type RefreshResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Overdue int `json:"overdue"`
}

type OrderLine struct {
	BookID    openapi_types.UUID `json:"bookId"`
	Quantity  int                `json:"quantity"`
	UnitPrice string             `json:"unitPrice"`
}

type PlaceOrderRequest struct {
	MemberID      openapi_types.UUID `json:"memberId"`
	Currency      string             `json:"currency"`
	Items         []OrderLine        `json:"items"`
	Discount      string             `json:"discount"`
	PaymentMethod string             `json:"paymentMethod"`
}

type PlacedOrder struct {
	OrderID   openapi_types.UUID `json:"orderId"`
	PaymentID openapi_types.UUID `json:"paymentId"`
}

type Address struct {
	ZipCode string `json:"zipCode"`
	Street  string `json:"street"`
	Detail  string `json:"detail"`
}

type ConfirmOrderRequest struct {
	RecipientName string  `json:"recipientName"`
	Address       Address `json:"address"`
}

type ShipOrderRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	CourierCompany string `json:"courierCompany"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type OrderSummary struct {
	OrderID        openapi_types.UUID `json:"orderId"`
	Status         string             `json:"status"`
	TotalAmount    Money              `json:"totalAmount"`
	DiscountAmount Money              `json:"discountAmount"`
	FinalAmount    Money              `json:"finalAmount"`
	RefundedTotal  Money              `json:"refundedTotal"`
	NetAmount      Money              `json:"netAmount"`
	Cancellable    bool               `json:"cancellable"`
	PaymentStatus  string             `json:"paymentStatus,omitempty"`
}

func toOrderSummary(v queries.OrderSummary) OrderSummary {
	summary := OrderSummary{
		OrderID:        v.OrderID.Bytes(),
		Status:         v.Status.String(),
		TotalAmount:    toMoney(v.TotalAmount),
		DiscountAmount: toMoney(v.DiscountAmount),
		FinalAmount:    toMoney(v.FinalAmount),
		RefundedTotal:  toMoney(v.RefundedTotal),
		NetAmount:      toMoney(v.NetAmount),
		Cancellable:    v.Cancellable,
	}
	if v.PaymentStatus != payment.Unknown {
		summary.PaymentStatus = v.PaymentStatus.String()
	}
	return summary
}

type TransactionRequest struct {
	TransactionID string `json:"transactionId"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type MemoRequest struct {
	Memo string `json:"memo"`
}

type DeliveryStatusRequest struct {
	Status string `json:"status"`
}

type BankAccount struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
}

type RefundRequest struct {
	Amount      string      `json:"amount"`
	Currency    string      `json:"currency"`
	Reason      string      `json:"reason"`
	RequestedBy string      `json:"requestedBy"`
	BankAccount BankAccount `json:"bankAccount"`
}

type ActorRequest struct {
	Actor string `json:"actor"`
}

type RejectRefundRequest struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}
