// Package application contiene los casos de uso y sus reglas de validación.
package application

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/barstock/internal/domain"
)

// Validate instancia compartida del validador. Las decimales se registran como
// float64 para que tags numéricos como gt=0 o lte=10000 funcionen.
var Validate = validator.New()

var (
	productNameRe  = regexp.MustCompile(`^[A-Za-z0-9\s\-_áéíóúÁÉÍÓÚñÑ]+$`)
	supplierNameRe = regexp.MustCompile(`^[A-Za-z0-9\s\-_áéíóúÁÉÍÓÚñÑ.,&]+$`)
	configKeyRe    = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

func init() {
	Validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// product_name: 2-50 caracteres, letras, números, espacios, guiones y acentos.
	Validate.RegisterValidation("product_name", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return len(s) >= 2 && len(s) <= 50 && productNameRe.MatchString(s)
	})

	// supplier_name: como product_name pero hasta 100 caracteres y admite ., y &.
	Validate.RegisterValidation("supplier_name", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return len(s) >= 2 && len(s) <= 100 && supplierNameRe.MatchString(s)
	})

	// purchase_date: YYYY-MM-DD, ni futura ni con más de un año de antigüedad.
	Validate.RegisterValidation("purchase_date", func(fl validator.FieldLevel) bool {
		t, err := time.Parse("2006-01-02", fl.Field().String())
		if err != nil {
			return false
		}
		now := time.Now()
		endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		if t.After(endOfToday) {
			return false
		}
		return !t.Before(now.AddDate(-1, 0, 0))
	})

	// config_key: solo minúsculas, números y guiones bajos, empezando por letra o _.
	Validate.RegisterValidation("config_key", func(fl validator.FieldLevel) bool {
		return configKeyRe.MatchString(fl.Field().String())
	})
}

// ValidateStruct ejecuta los tags de validación y traduce el primer fallo a un
// error de dominio con mensaje legible.
func ValidateStruct(req any) error {
	if err := Validate.Struct(req); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok || len(errs) == 0 {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		fe := errs[0]
		return fmt.Errorf("%w: campo %s no cumple la regla %s", domain.ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return nil
}

// ValidateAnalysisRange valida un rango de fechas de análisis. Devuelve las
// fechas parseadas; maxDays limita la amplitud del rango.
func ValidateAnalysisRange(start, end string, maxDays int) (time.Time, time.Time, error) {
	var zero time.Time
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return zero, zero, fmt.Errorf("%w: las fechas deben tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return zero, zero, fmt.Errorf("%w: las fechas deben tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if s.After(e) {
		return zero, zero, fmt.Errorf("%w: la fecha de inicio no puede ser posterior a la fecha fin", domain.ErrInvalidInput)
	}
	if maxDays > 0 && int(e.Sub(s).Hours()/24) > maxDays {
		return zero, zero, fmt.Errorf("%w: el rango de fechas no puede exceder %d días", domain.ErrInvalidInput, maxDays)
	}
	return s, e, nil
}

// SanitizeString recorta espacios, elimina caracteres problemáticos y trunca.
func SanitizeString(s string, maxLength int) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', ';':
			return -1
		}
		return r
	}, s)
	if maxLength > 0 && utf8.RuneCountInString(s) > maxLength {
		s = string([]rune(s)[:maxLength])
	}
	return s
}
