package dto

type SetPriceRequest struct {
	PricePerCredit int64 `json:"price_per_credit" validate:"required,min=0"`
}

type UpdatePaymentRequest struct {
	PaidAmount int64 `json:"paid_amount" validate:"min=0"`
}
