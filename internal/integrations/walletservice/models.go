package walletservice

// CreditRequest тело запроса зачисления кредитов
type CreditRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// CreditResponse ответ на зачисление
type CreditResponse struct {
	TransactionID string  `json:"transaction_id"`
	Balance       float64 `json:"balance"`
}
