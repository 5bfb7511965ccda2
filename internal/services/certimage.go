package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"

	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type CertificateImageService interface {
	Render(ctx context.Context, userID, certificateID uuid.UUID) (bytes.Buffer, error)
}

type certificateImageService struct {
	log             *logger.Logger
	userRepo        repos.UserRepo
	certificateRepo repos.CertificateRepo

	titleFace   font.Face
	headingFace font.Face
	bodyFace    font.Face
	smallFace   font.Face
}

func NewCertificateImageService(log *logger.Logger, userRepo repos.UserRepo, certificateRepo repos.CertificateRepo) (CertificateImageService, error) {
	serviceLog := log.With("service", "CertificateImageService")

	fontPath := os.Getenv("CERT_FONT")
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("Env var CERT_FONT is empty")
	}
	serviceLog.Info("Loading certificate font", "font", fontPath)

	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := func(size float64) font.Face {
		return truetype.NewFace(parsedFont, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}

	return &certificateImageService{
		log:             serviceLog,
		userRepo:        userRepo,
		certificateRepo: certificateRepo,
		titleFace:       face(64),
		headingFace:     face(40),
		bodyFace:        face(28),
		smallFace:       face(18),
	}, nil
}

func (cs *certificateImageService) Render(ctx context.Context, userID, certificateID uuid.UUID) (bytes.Buffer, error) {
	var buf bytes.Buffer

	cert, err := cs.certificateRepo.GetByID(ctx, nil, certificateID)
	if err != nil {
		return buf, fmt.Errorf("fetch certificate: %w", err)
	}
	if cert == nil || cert.UserID != userID {
		return buf, ErrCertificateMissing
	}
	users, err := cs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return buf, fmt.Errorf("fetch user: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return buf, ErrUserNotFound
	}
	user := users[0]

	const width, height = 1200, 850
	dc := gg.NewContext(width, height)

	dc.SetColor(color.NRGBA{R: 0xFD, G: 0xFB, B: 0xF5, A: 0xFF})
	dc.DrawRectangle(0, 0, width, height)
	dc.Fill()

	// Double border frame
	accent := color.NRGBA{R: 0x1B, G: 0x4D, B: 0x3E, A: 0xFF}
	dc.SetColor(accent)
	dc.SetLineWidth(6)
	dc.DrawRectangle(30, 30, width-60, height-60)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawRectangle(48, 48, width-96, height-96)
	dc.Stroke()

	cx := float64(width) / 2

	dc.SetFontFace(cs.titleFace)
	dc.SetColor(accent)
	drawCentered(dc, "Certificate of Completion", cx, 160)

	dc.SetFontFace(cs.smallFace)
	dc.SetColor(color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xFF})
	drawCentered(dc, "Suraksha Disaster Preparedness Training", cx, 205)
	drawCentered(dc, "This is to certify that", cx, 300)

	dc.SetFontFace(cs.headingFace)
	dc.SetColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF})
	drawCentered(dc, user.FullName, cx, 365)

	dc.SetFontFace(cs.bodyFace)
	drawCentered(dc, fmt.Sprintf("has successfully completed the %s", certificateTitle(cert)), cx, 440)
	drawCentered(dc, fmt.Sprintf("with a score of %d%%", cert.Score), cx, 490)

	dc.SetFontFace(cs.smallFace)
	dc.SetColor(color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xFF})
	drawCentered(dc, fmt.Sprintf("Level: %s", titleCase(cert.Level)), cx, 560)
	drawCentered(dc, fmt.Sprintf("Issued: %s", cert.IssuedAt.Format("January 2, 2006")), cx, 640)
	drawCentered(dc, fmt.Sprintf("Valid until: %s", cert.ValidUntil.Format("January 2, 2006")), cx, 670)
	drawCentered(dc, fmt.Sprintf("Certificate ID: %s", cert.ID.String()), cx, 760)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func drawCentered(dc *gg.Context, s string, cx, baseline float64) {
	tw, _ := dc.MeasureString(s)
	dc.DrawString(s, cx-tw/2, baseline)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func certificateTitle(cert *types.Certificate) string {
	label := titleCase(cert.DisasterType)
	switch cert.Type {
	case types.CertificateTypeDrill:
		return fmt.Sprintf("%s Emergency Drill", label)
	default:
		return fmt.Sprintf("%s Safety Quiz", label)
	}
}
