package reports

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/go-pdf/fpdf"
)

// WeeklyPDF renders the weekly stats as a one-page A4 summary.
func WeeklyPDF(w io.Writer, stats *services.WeeklyStats) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Mingguan", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Laporan Penjualan Mingguan", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s s/d %s", stats.From, stats.To), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(60, 7, "Total pesanan", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, strconv.Itoa(stats.TotalOrders), "", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Total pendapatan", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, utils.FormatRupiah(stats.TotalRevenue), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	table(pdf, []string{"Tanggal", "Hari", "Pesanan", "Pendapatan"}, []float64{40, 40, 40, 60}, func(add func(...string)) {
		for _, d := range stats.Days {
			add(d.Date, d.Label, strconv.Itoa(d.Orders), utils.FormatRupiah(d.Revenue))
		}
	})
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Menu Terlaris", "", 1, "L", false, 0, "")
	table(pdf, []string{"No", "Menu", "Jumlah", "Pendapatan"}, []float64{15, 85, 30, 50}, func(add func(...string)) {
		for i, it := range stats.TopItems {
			add(strconv.Itoa(i+1), it.Name, strconv.Itoa(it.Quantity), utils.FormatRupiah(it.Revenue))
		}
	})

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func table(pdf *fpdf.Fpdf, headers []string, widths []float64, rows func(add func(...string))) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	rows(func(cells ...string) {
		for i, c := range cells {
			align := "L"
			if i >= 2 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	})
}
