package document

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/signintech/gopdf"
)

// A4 landscape in points.
const (
	certPageW = 841.89
	certPageH = 595.28
)

const certFontFamily = "cert"

// CertificateData carries everything printed on a certificate.
type CertificateData struct {
	Number       string
	StudentName  string
	StudentNIS   string
	ProgramTitle string
	IssuedAt     time.Time
}

// CertificateRenderer renders participation certificates as PDF. The
// TTF font is loaded once at construction and reused across renders.
type CertificateRenderer struct {
	fontPath string
}

func NewCertificateRenderer(fontPath string) (*CertificateRenderer, error) {
	if _, err := os.Stat(fontPath); err != nil {
		return nil, fmt.Errorf("certificate font %s: %w", fontPath, err)
	}
	return &CertificateRenderer{fontPath: fontPath}, nil
}

// Render writes a single-page landscape certificate to w.
func (r *CertificateRenderer) Render(w io.Writer, data CertificateData) error {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: certPageW, H: certPageH}})
	if err := pdf.AddTTFFont(certFontFamily, r.fontPath); err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	pdf.AddPage()

	pdf.SetLineWidth(2)
	pdf.SetStrokeColor(30, 64, 124)
	pdf.RectFromUpperLeftWithStyle(24, 24, certPageW-48, certPageH-48, "D")

	if err := r.centeredLine(&pdf, 96, 28, "SERTIFIKAT PARTISIPASI"); err != nil {
		return err
	}
	if err := r.centeredLine(&pdf, 140, 12, "Nomor: "+data.Number); err != nil {
		return err
	}
	if err := r.centeredLine(&pdf, 210, 14, "Diberikan kepada"); err != nil {
		return err
	}
	if err := r.centeredLine(&pdf, 250, 24, data.StudentName); err != nil {
		return err
	}
	if err := r.centeredLine(&pdf, 290, 12, "NIS "+data.StudentNIS); err != nil {
		return err
	}
	if err := r.centeredLine(&pdf, 350, 14, "atas partisipasinya dalam kegiatan"); err != nil {
		return err
	}
	if err := r.centeredLine(&pdf, 390, 18, data.ProgramTitle); err != nil {
		return err
	}
	if err := r.centeredLine(&pdf, 470, 12, data.IssuedAt.Format("02-01-2006")); err != nil {
		return err
	}

	if _, err := pdf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (r *CertificateRenderer) centeredLine(pdf *gopdf.GoPdf, y float64, size int, text string) error {
	if err := pdf.SetFont(certFontFamily, "", size); err != nil {
		return fmt.Errorf("set font: %w", err)
	}
	pdf.SetXY(24, y)
	err := pdf.CellWithOption(&gopdf.Rect{W: certPageW - 48, H: float64(size) + 8}, text, gopdf.CellOption{
		Align: gopdf.Center | gopdf.Middle,
	})
	if err != nil {
		return fmt.Errorf("draw text: %w", err)
	}
	return nil
}
