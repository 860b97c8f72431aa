package settings

// ContactInfo is a singleton row; updates overwrite it in place.
type ContactInfo struct {
	Intro    string `json:"intro"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Facebook string `json:"facebook"`
	Address  string `json:"address"`
}

// PaymentInfo holds the shop's bank transfer details shown at checkout.
type PaymentInfo struct {
	BankName      string  `json:"bank_name"`
	AccountNumber string  `json:"account_number"`
	AccountHolder string  `json:"account_holder"`
	QRFilename    *string `json:"qr_filename,omitempty"`
}
