package infra

// imagestore.go
// Client for the external image service that stores transfer evidence photos.
// The core never uploads — it only checks that a submitted reference exists
// before accepting a traspaso. Calls go through the circuit breaker so a downed
// image service cannot block transfers: with the circuit open the check is
// skipped and logged.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrEvidenciaNoEncontrada indicates the evidence reference does not exist in
// the image service.
var ErrEvidenciaNoEncontrada = errors.New("evidencia no encontrada en el servicio de imagenes")

// ImageClient verifies evidence references against the image service.
type ImageClient struct {
	client *resty.Client
}

func NewImageClient(baseURL string) *ImageClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &ImageClient{client: c}
}

// VerifyEvidencia checks that ref exists. 404 maps to ErrEvidenciaNoEncontrada;
// any other non-2xx is a transport error counted by the circuit breaker.
func (c *ImageClient) VerifyEvidencia(ctx context.Context, ref string) error {
	resp, err := c.client.R().SetContext(ctx).Head("/images/" + ref)
	if err != nil {
		return fmt.Errorf("imagestore: %w", err)
	}
	switch {
	case resp.IsSuccess():
		return nil
	case resp.StatusCode() == 404:
		return ErrEvidenciaNoEncontrada
	default:
		return fmt.Errorf("imagestore: status %d", resp.StatusCode())
	}
}
