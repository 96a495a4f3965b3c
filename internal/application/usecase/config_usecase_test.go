package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/application/usecase"
	"github.com/tu-usuario/barstock/internal/domain"
	"github.com/tu-usuario/barstock/internal/domain/entity"
)

func TestSetValue_LuegoGetValueDevuelveLoGuardado(t *testing.T) {
	repo := &fakeConfigRepo{}
	uc := usecase.NewConfigUseCase(repo, testLogger())

	out, err := uc.SetValue(context.Background(), dto.SetConfigRequest{
		Key:   entity.ConfigKeyStockThreshold,
		Value: "25.5",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ConfigKeyStockThreshold, out.Key)
	assert.Equal(t, "25.5", out.Value)

	got := uc.GetValue(context.Background(), entity.ConfigKeyStockThreshold, "10.0")
	assert.Equal(t, "25.5", got, "El valor guardado debe sobrevivir la ida y vuelta")
}

func TestSetValue_ClaveInvalidaSeRechaza(t *testing.T) {
	uc := usecase.NewConfigUseCase(&fakeConfigRepo{}, testLogger())

	_, err := uc.SetValue(context.Background(), dto.SetConfigRequest{
		Key:   "Clave-Inválida",
		Value: "1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetValue_ClaveAusenteUsaElValorPorDefecto(t *testing.T) {
	uc := usecase.NewConfigUseCase(&fakeConfigRepo{}, testLogger())
	assert.Equal(t, "30", uc.GetValue(context.Background(), entity.ConfigKeyInactivityDays, "30"))
}

func TestGetValue_ErrorDeAlmacenDegradaAlValorPorDefecto(t *testing.T) {
	repo := &fakeConfigRepo{err: errors.New("sin conexión")}
	uc := usecase.NewConfigUseCase(repo, testLogger())
	assert.Equal(t, "0.15", uc.GetValue(context.Background(), entity.ConfigKeyPriceVariation, "0.15"))
}
