package domain

import "strings"

type PaymentToken string

const (
	PaymentCash   PaymentToken = "dinheiro"
	PaymentPix    PaymentToken = "pix"
	PaymentCredit PaymentToken = "crédito"
	PaymentDebit  PaymentToken = "débito"
)

// PaymentMatches reports whether method contains token, ignoring case.
// Free-text methods such as "Dinheiro + crédito" match more than one token.
func PaymentMatches(method string, token PaymentToken) bool {
	return strings.Contains(strings.ToLower(method), string(token))
}
