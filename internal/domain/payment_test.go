package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMatches(t *testing.T) {
	tests := []struct {
		method string
		token  PaymentToken
		want   bool
	}{
		{"Dinheiro", PaymentCash, true},
		{"dinheiro", PaymentCash, true},
		{"PIX", PaymentPix, true},
		{"Cartão de Crédito", PaymentCredit, true},
		{"CARTÃO DE CRÉDITO", PaymentCredit, true},
		{"Débito", PaymentDebit, true},
		{"Dinheiro crédito", PaymentCash, true},
		{"Dinheiro crédito", PaymentCredit, true},
		{"Pix", PaymentCash, false},
		{"", PaymentPix, false},
	}

	for _, tt := range tests {
		t.Run(tt.method+"/"+string(tt.token), func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentMatches(tt.method, tt.token))
		})
	}
}
