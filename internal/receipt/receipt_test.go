package receipt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartfinance/internal/config"
	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
)

var testStore = config.StoreConfig{Name: "Cell Center", CNPJ: "12.345.678/0001-90", Phone: "11 99999-0000"}

func finishedOrder() domain.ServiceOrder {
	return domain.ServiceOrder{
		ID:            7,
		CreatedAt:     time.Date(2024, 5, 10, 13, 0, 0, 0, time.UTC),
		Description:   "Troca de tela",
		Device:        "Galaxy A32",
		Type:          domain.ServiceTypeMaintenance,
		PartsCost:     decimal.RequireFromString("150"),
		LaborCost:     decimal.RequireFromString("80.5"),
		Status:        domain.ServiceStatusFinished,
		PaymentMethod: "Pix",
		Customer:      "Rita",
	}
}

func TestRenderer_Sale(t *testing.T) {
	sale := domain.Sale{
		ID:            12,
		CreatedAt:     time.Now(),
		ProductName:   "Película 3D",
		Quantity:      2,
		UnitPrice:     decimal.RequireFromString("20"),
		PaymentMethod: "Dinheiro",
	}
	sale.ComputeTotal()

	text, err := NewRenderer(testStore).Sale(sale)
	require.NoError(t, err)

	assert.Contains(t, text, "Cell Center")
	assert.Contains(t, text, "CNPJ: 12.345.678/0001-90")
	assert.Contains(t, text, "VENDA #12")
	assert.Contains(t, text, "2 x R$ 20,00")
	assert.Contains(t, text, "R$ 40,00")
	assert.Contains(t, text, "Pagamento: Dinheiro")
	assert.NotContains(t, text, "Cliente:")
}

func TestRenderer_ServiceOrder(t *testing.T) {
	text, err := NewRenderer(testStore).ServiceOrder(finishedOrder())
	require.NoError(t, err)

	assert.Contains(t, text, "SERVIÇO #7")
	assert.Contains(t, text, "Aparelho: Galaxy A32")
	assert.Contains(t, text, "Cliente: Rita")
	assert.Contains(t, text, "R$ 150,00")
	assert.Contains(t, text, "R$ 230,50")
}

func TestRenderer_ServiceOrder_RequiresFinished(t *testing.T) {
	order := finishedOrder()
	order.Status = domain.ServiceStatusStarted

	_, err := NewRenderer(testStore).ServiceOrder(order)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestPair_And_Center(t *testing.T) {
	assert.Len(t, []rune(pair("TOTAL", "R$ 1,00")), lineWidth)
	assert.Equal(t, "a very long label here R$ 10.000,00", pair("a very long label here", "R$ 10.000,00"))
	assert.Equal(t, "               x", center("x"))
	long := "a very long store name that overflows"
	assert.Equal(t, long, center(long))
}

func TestEncodeESCPOS(t *testing.T) {
	data, err := EncodeESCPOS("Serviço ✓\n")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte{0x1b, 0x40, 0x1b, 0x74, 0x03}))
	assert.True(t, bytes.HasSuffix(data, []byte{0x1b, 0x64, 0x04, 0x1d, 0x56, 0x00}))
	assert.Contains(t, string(data), "Servi\x87o")
	assert.NotContains(t, string(data), "✓")
}

func TestNetworkPrinter_Print(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()

	p := NewNetworkPrinter(ln.Addr().String(), time.Second)
	require.NoError(t, p.Print(context.Background(), []byte("hello")))

	select {
	case b := <-received:
		assert.Equal(t, []byte("hello"), b)
	case <-time.After(2 * time.Second):
		t.Fatal("printer did not receive data")
	}
}

func TestNetworkPrinter_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	err = NewNetworkPrinter(addr, 200*time.Millisecond).Print(context.Background(), []byte("x"))
	assert.Error(t, err)
}

func TestDevicePrinter_Print(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	require.NoError(t, NewDevicePrinter(path).Print(context.Background(), []byte("abc")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestNewPrinter(t *testing.T) {
	assert.Nil(t, NewPrinter(config.PrinterConfig{}))
	assert.IsType(t, &NetworkPrinter{}, NewPrinter(config.PrinterConfig{Address: "10.0.0.5:9100"}))
	assert.IsType(t, &DevicePrinter{}, NewPrinter(config.PrinterConfig{Device: "/dev/usb/lp0"}))
}

type stubSales struct{}

func (stubSales) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	return nil, apperrors.NewNotFoundError("sale with id 1 not found")
}

type stubOrders struct {
	order domain.ServiceOrder
}

func (s stubOrders) Get(ctx context.Context, id int64) (*domain.ServiceOrder, error) {
	o := s.order
	return &o, nil
}

type recordingPrinter struct {
	data []byte
	err  error
}

func (p *recordingPrinter) Print(ctx context.Context, data []byte) error {
	p.data = data
	return p.err
}

func TestService_PrintService(t *testing.T) {
	printer := &recordingPrinter{}
	svc := NewService(stubSales{}, stubOrders{order: finishedOrder()}, NewRenderer(testStore), printer, zap.NewNop())

	require.NoError(t, svc.PrintService(context.Background(), 7))
	assert.True(t, bytes.HasSuffix(printer.data, escCut))
}

func TestService_PrintService_Errors(t *testing.T) {
	t.Run("no printer", func(t *testing.T) {
		svc := NewService(stubSales{}, stubOrders{order: finishedOrder()}, NewRenderer(testStore), nil, zap.NewNop())

		_, ok := apperrors.IsValidationError(svc.PrintService(context.Background(), 7))
		assert.True(t, ok)
	})

	t.Run("not finished", func(t *testing.T) {
		order := finishedOrder()
		order.Status = domain.ServiceStatusStarted
		printer := &recordingPrinter{}
		svc := NewService(stubSales{}, stubOrders{order: order}, NewRenderer(testStore), printer, zap.NewNop())

		_, ok := apperrors.IsValidationError(svc.PrintService(context.Background(), 7))
		assert.True(t, ok)
		assert.Nil(t, printer.data)
	})

	t.Run("printer offline", func(t *testing.T) {
		printer := &recordingPrinter{err: errors.New("connection refused")}
		svc := NewService(stubSales{}, stubOrders{order: finishedOrder()}, NewRenderer(testStore), printer, zap.NewNop())

		_, ok := apperrors.IsExternalToolError(svc.PrintService(context.Background(), 7))
		assert.True(t, ok)
	})

	t.Run("missing sale", func(t *testing.T) {
		svc := NewService(stubSales{}, stubOrders{}, NewRenderer(testStore), nil, zap.NewNop())

		_, err := svc.SaleReceipt(context.Background(), 1)
		_, ok := apperrors.IsNotFoundError(err)
		assert.True(t, ok)
	})
}
