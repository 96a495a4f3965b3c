package application_test

import (
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/barstock/internal/application"
	"github.com/tu-usuario/barstock/internal/domain"
)

type nameProbe struct {
	Product  string `validate:"omitempty,product_name"`
	Supplier string `validate:"omitempty,supplier_name"`
	Date     string `validate:"omitempty,purchase_date"`
	Key      string `validate:"omitempty,config_key"`
}

func TestValidateStruct_NombreDeProducto(t *testing.T) {
	cases := []struct {
		name  string
		value string
		valid bool
	}{
		{"con acentos", "Jamón Ibérico", true},
		{"con guiones", "Coca-Cola_Zero", true},
		{"demasiado corto", "A", false},
		{"caracteres prohibidos", "Pollo<script>", false},
		{"solo espacios", "   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := application.ValidateStruct(nameProbe{Product: tc.value})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestValidateStruct_NombreDeProveedorAdmitePuntuacionComercial(t *testing.T) {
	assert.NoError(t, application.ValidateStruct(nameProbe{Supplier: "Distribuciones López, S.L. & Cía"}))
	assert.ErrorIs(t, application.ValidateStruct(nameProbe{Supplier: "X"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, application.ValidateStruct(nameProbe{Supplier: "Bar \"El Rincón\""}), domain.ErrInvalidInput)
}

func TestValidateStruct_FechaDeCompra(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	tooOld := time.Now().AddDate(-1, 0, -5).Format("2006-01-02")

	assert.NoError(t, application.ValidateStruct(nameProbe{Date: today}))
	assert.ErrorIs(t, application.ValidateStruct(nameProbe{Date: tomorrow}), domain.ErrInvalidInput, "Fechas futuras se rechazan")
	assert.ErrorIs(t, application.ValidateStruct(nameProbe{Date: tooOld}), domain.ErrInvalidInput, "Más de un año de antigüedad se rechaza")
	assert.ErrorIs(t, application.ValidateStruct(nameProbe{Date: "15/08/2026"}), domain.ErrInvalidInput)
}

func TestValidateStruct_ClaveDeConfiguracion(t *testing.T) {
	assert.NoError(t, application.ValidateStruct(nameProbe{Key: "umbral_exceso_stock"}))
	assert.NoError(t, application.ValidateStruct(nameProbe{Key: "_interno"}))
	assert.ErrorIs(t, application.ValidateStruct(nameProbe{Key: "Umbral"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, application.ValidateStruct(nameProbe{Key: "9clave"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, application.ValidateStruct(nameProbe{Key: "clave-con-guion"}), domain.ErrInvalidInput)
}

func TestValidateAnalysisRange(t *testing.T) {
	s, e, err := application.ValidateAnalysisRange("2026-01-01", "2026-01-31", 730)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), s)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), e)

	_, _, err = application.ValidateAnalysisRange("2026-02-01", "2026-01-01", 730)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "Rango invertido")

	_, _, err = application.ValidateAnalysisRange("2024-01-01", "2026-08-01", 730)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "Rango más amplio que el máximo")

	_, _, err = application.ValidateAnalysisRange("01-01-2026", "2026-01-31", 730)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "Formato de fecha inválido")
}

func TestValidateStruct_ErrorEnvuelveElDominio(t *testing.T) {
	err := application.ValidateStruct(nameProbe{Product: "!"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Product")
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Nota limpia", application.SanitizeString("  Nota limpia  ", 100))
	assert.Equal(t, "scriptalert(1)/script", application.SanitizeString(`<script>alert("1")</script>`, 100))
	assert.Equal(t, "abc", application.SanitizeString("abcdef", 3))
	assert.Equal(t, "", application.SanitizeString("   ", 10))
}

func TestSanitizeString_TruncaPorCaracteresNoPorBytes(t *testing.T) {
	out := application.SanitizeString("Jamón ibérico", 5)
	assert.Equal(t, "Jamón", out)
	assert.True(t, utf8.ValidString(out), "El truncado no debe partir caracteres acentuados")
}
