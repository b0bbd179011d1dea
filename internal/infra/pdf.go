package infra

// pdf.go — Statistics report generation using go-pdf/fpdf.
// Produces an A4 summary of one evento: financial rollup, per-product
// table with waste percentage, and sales breakdowns.
// The output file is saved to storagePath/reporte_{evento}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerarReporteEventoPDF renders the statistics rollup as a PDF report.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerarReporteEventoPDF(stats *dto.EstadisticasResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_%s.pdf", stats.EventoID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Reporte de Evento", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, stats.NombreEvento, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Resumen financiero ───────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Resumen financiero", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	resumen := []struct {
		label string
		value string
	}{
		{"Inversión total", "$" + stats.InversionTotal.StringFixed(2)},
		{"Ingreso bruto", "$" + stats.IngresoBruto.StringFixed(2)},
		{"Total cancelado", "$" + stats.TotalCancelado.StringFixed(2)},
		{"Ingreso neto", "$" + stats.IngresoNeto.StringFixed(2)},
		{"Ganancia neta", "$" + stats.GananciaNeta.StringFixed(2)},
		{"Pedidos completados", fmt.Sprintf("%d", stats.PedidosCompletados)},
		{"Pedidos cancelados", fmt.Sprintf("%d", stats.PedidosCancelados)},
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range resumen {
		pdf.CellFormat(contentW*0.5, 6, r.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.5, 6, r.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Productos ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Productos", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	cols := []struct {
		w     float64
		title string
	}{
		{contentW * 0.30, "Producto"},
		{contentW * 0.12, "Inicial"},
		{contentW * 0.12, "Vendidos"},
		{contentW * 0.12, "Restante"},
		{contentW * 0.16, "Desperdicio %"},
		{contentW * 0.18, "Margen %"},
	}
	pdf.SetFont("Helvetica", "B", 8)
	for i, c := range cols {
		align := "R"
		last := 0
		if i == 0 {
			align = "L"
		}
		if i == len(cols)-1 {
			last = 1
		}
		pdf.CellFormat(c.w, 6, c.title, "B", last, align, false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 8)
	for _, p := range stats.Productos {
		pdf.CellFormat(cols[0].w, 5, p.Nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1].w, 5, fmt.Sprintf("%d", p.CantidadInicial), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[2].w, 5, fmt.Sprintf("%d", p.Vendidos), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3].w, 5, fmt.Sprintf("%d", p.Restante), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4].w, 5, p.PorcentajeDesperdicio.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[5].w, 5, p.MargenGanancia.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Ventas por método de pago ────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Ventas por método de pago", "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 9)
	for _, m := range stats.PorMetodo {
		pdf.CellFormat(contentW*0.4, 6, m.MetodoPago, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, fmt.Sprintf("%d pedidos", m.Pedidos), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, "$"+m.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Ventas por cajero ────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Ventas por cajero", "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 9)
	for _, c := range stats.PorCajero {
		pdf.CellFormat(contentW*0.4, 6, c.Nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, fmt.Sprintf("%d pedidos", c.Pedidos), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, "$"+c.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
