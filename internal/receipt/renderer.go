package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"

	"smartfinance/internal/config"
	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
)

const lineWidth = 32

const saleTemplate = `{{center .Store.Name}}
{{center (print "CNPJ: " .Store.CNPJ)}}
{{center (print "Tel: " .Store.Phone)}}
{{rule}}
{{center (print "VENDA #" .Sale.ID)}}
Data: {{date .Sale.CreatedAt}}
{{- if .Sale.Customer}}
Cliente: {{.Sale.Customer}}
{{- end}}
{{rule}}
{{.Sale.ProductName}}
{{.Sale.Quantity}} x {{brl .Sale.UnitPrice}}
{{rule}}
{{pair "TOTAL" (brl .Sale.Total)}}
{{- if .Sale.PaymentMethod}}
Pagamento: {{.Sale.PaymentMethod}}
{{- end}}
{{rule}}
{{center "Obrigado pela preferência!"}}
`

const serviceTemplate = `{{center .Store.Name}}
{{center (print "CNPJ: " .Store.CNPJ)}}
{{center (print "Tel: " .Store.Phone)}}
{{rule}}
{{center (print "SERVIÇO #" .Order.ID)}}
Data: {{date .Order.CreatedAt}}
{{- if .Order.Customer}}
Cliente: {{.Order.Customer}}
{{- end}}
{{- if .Order.Device}}
Aparelho: {{.Order.Device}}
{{- end}}
Tipo: {{.Order.Type}}
{{rule}}
{{.Order.Description}}
{{rule}}
{{- if eq .Order.Type "Manutenção"}}
{{pair "Peças" (brl .Order.PartsCost)}}
{{pair "Mão de obra" (brl .Order.LaborCost)}}
{{- end}}
{{pair "TOTAL" (brl .Order.Total)}}
{{- if .Order.PaymentMethod}}
Pagamento: {{.Order.PaymentMethod}}
{{- end}}
{{rule}}
{{center "Obrigado pela preferência!"}}
`

// Renderer formats plain-text receipts for a 58mm till printer.
type Renderer struct {
	store config.StoreConfig
	sale  *template.Template
	order *template.Template
}

func NewRenderer(store config.StoreConfig) *Renderer {
	funcs := template.FuncMap{
		"brl":    brl,
		"date":   func(t time.Time) string { return t.Local().Format("02/01/2006 15:04") },
		"rule":   func() string { return strings.Repeat("-", lineWidth) },
		"center": center,
		"pair":   pair,
	}

	return &Renderer{
		store: store,
		sale:  template.Must(template.New("sale").Funcs(funcs).Parse(saleTemplate)),
		order: template.Must(template.New("service").Funcs(funcs).Parse(serviceTemplate)),
	}
}

func (r *Renderer) Sale(sale domain.Sale) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Store config.StoreConfig
		Sale  domain.Sale
	}{r.store, sale}

	if err := r.sale.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering sale receipt: %w", err)
	}
	return buf.String(), nil
}

// ServiceOrder renders the receipt of a finished order.
func (r *Renderer) ServiceOrder(order domain.ServiceOrder) (string, error) {
	if !order.IsFinished() {
		return "", apperrors.NewValidationError("service order is not finished", apperrors.ValidationDetail{
			Field:   "status",
			Message: "only finished service orders have a receipt",
		})
	}

	var buf bytes.Buffer
	data := struct {
		Store config.StoreConfig
		Order domain.ServiceOrder
	}{r.store, order}

	if err := r.order.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering service receipt: %w", err)
	}
	return buf.String(), nil
}

// brl formats an amount the Brazilian way, e.g. R$ 1234,50.
func brl(d decimal.Decimal) string {
	return "R$ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}

func center(s string) string {
	n := len([]rune(s))
	if n >= lineWidth {
		return s
	}
	return strings.Repeat(" ", (lineWidth-n)/2) + s
}

func pair(label, value string) string {
	gap := lineWidth - len([]rune(label)) - len([]rune(value))
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}
