package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/giahoa6/crm/internal/model"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

var testAt = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

func testCustomers(n int) []model.Customer {
	customers := make([]model.Customer, 0, n)
	for i := 1; i <= n; i++ {
		customers = append(customers, model.Customer{
			ID:             int64(i),
			FullName:       fmt.Sprintf("Nguyễn Văn Đạt %d", i),
			Phone:          "0900000000",
			PreferredModel: "Air Blade 160cc",
			Status:         model.StatusPotential,
		})
	}
	return customers
}

func TestCustomersPDF(t *testing.T) {
	t.Log("empty list still renders document with header")
	{
		var buf bytes.Buffer
		require.NoError(t, CustomersPDF(&buf, []model.Customer{}, testAt))
		require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output must be pdf document")
	}

	t.Log("long list spans several pages")
	{
		var small, large bytes.Buffer
		require.NoError(t, CustomersPDF(&small, testCustomers(3), testAt))
		require.NoError(t, CustomersPDF(&large, testCustomers(120), testAt))

		require.Greater(t, bytes.Count(large.Bytes(), []byte("/Type /Page\n")), 1)
		require.Equal(t, 1, bytes.Count(small.Bytes(), []byte("/Type /Page\n")))
	}
}

func TestFold(t *testing.T) {
	require.Equal(t, "Danh Sach Khach Hang - GIA HOA 6", fold(title))
	require.Equal(t, "Dat dang", fold("Đạt đang"))
	require.Equal(t, "So Dien Thoai", fold("Số Điện Thoại"))
	require.Equal(t, "SH Mode 125cc", fold("SH Mode 125cc"))
}

func TestFit(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 9)

	require.Equal(t, "Vision", fit(pdf, "Vision", 45))

	long := "Wave RSX FI 110cc phiên bản đặc biệt màu đỏ đen bạc"
	got := fit(pdf, fold(long), 20)
	require.True(t, len(got) < len(long))
	require.LessOrEqual(t, pdf.GetStringWidth(got), 20-2*pdf.GetCellMargin())
}
