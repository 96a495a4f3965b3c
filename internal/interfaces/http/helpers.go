package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/barstock/internal/domain"
)

// pathParam lee un parámetro de ruta y lo desescapa. Los nombres de producto
// pueden llevar espacios ("Carne de Vaca" llega como Carne%20de%20Vaca).
func pathParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	if raw == "" {
		return "", fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, name)
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw, nil
	}
	return decoded, nil
}
