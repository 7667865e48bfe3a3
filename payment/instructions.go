package payment

import (
	"fmt"
	"net/url"

	"github.com/dustin/go-humanize"
	"github.com/jrsteele09/betatips/internal/config"
)

const currencySymbol = "₦"

// Instructions are the manual transfer details shown to a user upgrading to VIP.
type Instructions struct {
	BankName      string
	AccountNumber string
	AccountName   string
	Alternatives  []config.AlternativePayment
	Price         string // e.g. "₦10,000"
	Duration      string
	Steps         []string
	WhatsAppLink  string
	TelegramLink  string
}

// FormatPrice renders an amount in naira with thousands separators.
func FormatPrice(amount int) string {
	return currencySymbol + humanize.Comma(int64(amount))
}

// For builds the instructions for username from the payment configuration.
func For(cfg config.PaymentConfig, username string) Instructions {
	price := FormatPrice(cfg.GetVIPPrice())
	return Instructions{
		BankName:      cfg.GetBankName(),
		AccountNumber: cfg.GetAccountNumber(),
		AccountName:   cfg.GetAccountName(),
		Alternatives:  cfg.GetAlternativePayments(),
		Price:         price,
		Duration:      cfg.GetVIPDuration(),
		Steps: []string{
			fmt.Sprintf("Transfer exactly %s to the account above", price),
			"Send screenshot of payment receipt",
			fmt.Sprintf("Include your username: %s", username),
			"WhatsApp us for instant activation",
			"Your VIP access activated within 1 hour",
		},
		WhatsAppLink: WhatsAppLink(cfg.GetWhatsAppNumber(), WhatsAppMessage(price, username)),
		TelegramLink: TelegramLink(cfg.GetTelegramSupport(), TelegramMessage(price, username)),
	}
}

func WhatsAppMessage(price, username string) string {
	return fmt.Sprintf("Hello Beta Tips! I just made VIP payment of %s. My username is: %s. Please activate my VIP access.", price, username)
}

func TelegramMessage(price, username string) string {
	return fmt.Sprintf("Hi Beta Tips! I have made a payment for VIP subscription.\n\nAmount: %s\nUsername: %s\nTransaction Reference: [Your Transaction ID]\n\nPlease verify my payment and activate VIP access. I will send the receipt screenshot. Thank you!", price, username)
}

// WhatsAppLink is a wa.me deep link with prefilled text.
func WhatsAppLink(number, text string) string {
	u := url.URL{Scheme: "https", Host: "wa.me", Path: "/" + number}
	u.RawQuery = url.Values{"text": {text}}.Encode()
	return u.String()
}

// TelegramLink is a t.me deep link with prefilled text.
func TelegramLink(handle, text string) string {
	u := url.URL{Scheme: "https", Host: "t.me", Path: "/" + handle}
	u.RawQuery = url.Values{"text": {text}}.Encode()
	return u.String()
}
