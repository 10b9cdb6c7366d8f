// Package export renders the customer list as a printable PDF report.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/giahoa6/crm/internal/model"
	"github.com/go-pdf/fpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FileName is suggested name of the exported document
const FileName = "danh_sach_khach_hang.pdf"

const (
	title          = "Danh Sách Khách Hàng - GIA HÒA 6"
	generatedAtFmt = "02/01/2006 15:04:05"
	rowHeight      = 8.0
	marginLeft     = 14.0
)

type column struct {
	header string
	width  float64
	value  func(model.Customer) string
}

var columns = []column{
	{header: "ID", width: 16, value: func(c model.Customer) string { return strconv.FormatInt(c.ID, 10) }},
	{header: "Họ Tên", width: 52, value: func(c model.Customer) string { return c.FullName }},
	{header: "Số Điện Thoại", width: 36, value: func(c model.Customer) string { return c.Phone }},
	{header: "Mẫu Xe", width: 45, value: func(c model.Customer) string { return c.PreferredModel }},
	{header: "Trạng Thái", width: 33, value: func(c model.Customer) string { return c.Status.Label() }},
}

// hondaRed is header fill color
var hondaRed = [3]int{228, 0, 43}

// CustomersPDF writes A4 report with one row per customer, table header is repeated on every page
func CustomersPDF(w io.Writer, customers []model.Customer, at time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, 15, marginLeft)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	tableHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(hondaRed[0], hondaRed[1], hondaRed[2])
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(200, 200, 200)

		for _, col := range columns {
			pdf.CellFormat(col.width, rowHeight, fold(col.header), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() == 1 {
			pdf.SetFont("Helvetica", "B", 18)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(0, 10, fold(title), "", 1, "L", false, 0, "")

			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(100, 100, 100)
			pdf.CellFormat(0, 7, fold("Báo cáo được tạo vào: "+at.Format(generatedAtFmt)), "", 1, "L", false, 0, "")
			pdf.Ln(3)
		}
		tableHeader()
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 8, fmt.Sprintf("Trang %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	for i, c := range customers {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)

		for _, col := range columns {
			pdf.CellFormat(col.width, rowHeight, fit(pdf, fold(col.value(c)), col.width), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render customers pdf - %w", err)
	}
	return nil
}

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold strips Vietnamese diacritics, core PDF fonts have no glyphs for them
func fold(s string) string {
	s = strings.NewReplacer("đ", "d", "Đ", "D").Replace(s)

	folded, _, err := transform.String(folder, s)
	if err != nil {
		return s
	}
	return folded
}

// fit truncates text which doesn't fit cell width
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	maxWidth := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= maxWidth {
		return s
	}

	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > maxWidth {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
