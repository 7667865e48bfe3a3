package payment

import (
	"net/url"
	"strings"
	"testing"

	"github.com/jrsteele09/betatips/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₦10,000", FormatPrice(10000))
	assert.Equal(t, "₦500", FormatPrice(500))
	assert.Equal(t, "₦1,250,000", FormatPrice(1250000))
}

func TestForUsesConfig(t *testing.T) {
	t.Setenv("PAYMENT_VIP_PRICE", "15000")
	t.Setenv("PAYMENT_WHATSAPP_NUMBER", "2348000000000")
	t.Setenv("PAYMENT_BANK_NAME", "Test Bank")

	in := For(config.Payment{}, "alice")

	assert.Equal(t, "Test Bank", in.BankName)
	assert.Equal(t, "₦15,000", in.Price)
	assert.Equal(t, "30 days", in.Duration)
	assert.Len(t, in.Alternatives, 2)
	assert.Contains(t, in.Steps, "Include your username: alice")

	link, err := url.Parse(in.WhatsAppLink)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", link.Host)
	assert.Equal(t, "/2348000000000", link.Path)
	text := link.Query().Get("text")
	assert.True(t, strings.HasPrefix(text, "Hello Beta Tips!"))
	assert.Contains(t, text, "₦15,000")
	assert.Contains(t, text, "My username is: alice.")

	tg, err := url.Parse(in.TelegramLink)
	require.NoError(t, err)
	assert.Equal(t, "t.me", tg.Host)
	assert.Contains(t, tg.Query().Get("text"), "Username: alice\n")
}
