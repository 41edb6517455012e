package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — interface (fácil de mockar em testes)
type Generator interface {
	ApprovalReport(data ReportData) ([]byte, error)
}

// ReportGenerator renders the per-workspace approval summary.
type ReportGenerator struct {
	fontName string
}

type StageSummary struct {
	Group string
	Stage string
	Tasks []string
}

type ReportData struct {
	WorkspaceName string
	GeneratedAt   time.Time
	Stages        []StageSummary
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{fontName: "Helvetica"}
}

func (g *ReportGenerator) ApprovalReport(data ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Relatório de aprovação — %s", data.WorkspaceName), true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// ===== Cabeçalho
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr("Relatório de Aprovação"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s  —  %s", data.WorkspaceName, data.GeneratedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, tr(sub), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	// ===== Etapas
	for _, stage := range data.Stages {
		g.sectionTitle(pdf, tr(fmt.Sprintf("%s — %s (%d)", stage.Group, stage.Stage, len(stage.Tasks))))
		pdf.SetFont(g.fontName, "", 11)
		if len(stage.Tasks) == 0 {
			pdf.MultiCell(0, 6, tr("Nenhum conteúdo nesta etapa."), "", "L", false)
		}
		for _, title := range stage.Tasks {
			pdf.MultiCell(0, 6, tr("• "+title), "", "L", false)
		}
		pdf.Ln(2)
		g.hr(pdf)
	}

	// ===== Numeração de páginas
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			tr(fmt.Sprintf("Pág. %d/{nb}", pdf.PageNo())),
			"", 0, "C", false, 0, "",
		)
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
