package config

type PaymentConfig interface {
	GetBankName() string
	GetAccountNumber() string
	GetAccountName() string
	GetWhatsAppNumber() string
	GetTelegramSupport() string
	GetVIPPrice() int
	GetVIPDuration() string
	GetAlternativePayments() []AlternativePayment
}

// AlternativePayment is a mobile-money destination offered next to the bank transfer.
type AlternativePayment struct {
	Method string
	Number string
	Name   string
}

type Payment struct{}

var _ PaymentConfig = Payment{}

func (Payment) GetBankName() string {
	return GetEnv("PAYMENT_BANK_NAME", "First Bank Nigeria")
}

func (Payment) GetAccountNumber() string {
	return GetEnv("PAYMENT_ACCOUNT_NUMBER", "1234567890")
}

func (Payment) GetAccountName() string {
	return GetEnv("PAYMENT_ACCOUNT_NAME", "Beta Tips Nigeria")
}

func (Payment) GetWhatsAppNumber() string {
	return GetEnv("PAYMENT_WHATSAPP_NUMBER", "2348012345678")
}

func (Payment) GetTelegramSupport() string {
	return GetEnv("PAYMENT_TELEGRAM_SUPPORT", "betatips_support")
}

func (Payment) GetVIPPrice() int {
	return GetEnvAsInt("PAYMENT_VIP_PRICE", 10000)
}

func (Payment) GetVIPDuration() string {
	return GetEnv("PAYMENT_VIP_DURATION", "30 days")
}

func (p Payment) GetAlternativePayments() []AlternativePayment {
	name := p.GetAccountName()
	return []AlternativePayment{
		{Method: "Opay", Number: GetEnv("PAYMENT_OPAY_NUMBER", "08012345678"), Name: name},
		{Method: "Palmpay", Number: GetEnv("PAYMENT_PALMPAY_NUMBER", "08012345678"), Name: name},
	}
}
