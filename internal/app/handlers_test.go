package app

import (
	"testing"

	"github.com/surakshalabs/suraksha-backend/internal/catalog"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

func TestWireHandlersWithoutCertificateRenderer(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	// No renderer configured: listing must still be served, so the handler
	// is wired regardless.
	h := wireHandlers(log, Services{}, catalog.Default())
	if h.Certificate == nil {
		t.Fatal("certificate handler must be wired without a renderer")
	}
}
