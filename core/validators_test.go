package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type testForm struct {
	Nombre   string `json:"nombre" validate:"required,notblank"`
	DNI      string `json:"dni" validate:"omitempty,dni"`
	Telefono string `json:"telefono" validate:"omitempty,telefono"`
	Interno  string `json:"-" validate:"max=2"`
}

func TestTranslateErrors(t *testing.T) {
	validate, translator := NewValidator()

	tests := []struct {
		name string
		form testForm
		want map[string]string
	}{
		{name: "valid", form: testForm{Nombre: "Ana", DNI: "71234567", Telefono: "987654321"}},
		{name: "required", form: testForm{}, want: map[string]string{"nombre": "este campo es obligatorio"}},
		{name: "blank", form: testForm{Nombre: "  "}, want: map[string]string{"nombre": "este campo no puede estar vacío"}},
		{
			name: "custom tags", form: testForm{Nombre: "Ana", DNI: "123", Telefono: "12345"},
			want: map[string]string{"dni": "el documento debe tener 8 dígitos", "telefono": "el teléfono debe tener 9 dígitos"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateErrors(validate.Struct(tt.form), translator))
		})
	}

	t.Run("validation error", func(t *testing.T) {
		err := errors.Wrap(NewValidationError(nil, FieldError{Field: "dni", Error: "ya existe"}), "creating padre")
		assert.Equal(t, map[string]string{"dni": "ya existe"}, TranslateErrors(err, translator))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.Nil(t, TranslateErrors(errors.New("boom"), translator))
		assert.Nil(t, TranslateErrors(nil, translator))
	})
}
