package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

func TestLocalizedName_Resolve(t *testing.T) {
	nombres := entity.LocalizedName{
		"es": "Mármol Carrara",
		"en": "Carrara Marble",
		"it": "Marmo di Carrara",
	}

	assert.Equal(t, "Mármol Carrara", nombres.Resolve("es"))
	assert.Equal(t, "Mármol Carrara", nombres.Resolve("es-CO"),
		"es-CO debe caer al idioma base es")
	assert.Equal(t, "Marmo di Carrara", nombres.Resolve("it"))
	assert.Equal(t, "Carrara Marble", nombres.Resolve("fr"),
		"locale sin traducción debe caer a inglés")
	assert.Equal(t, "Carrara Marble", nombres.Resolve("no-es-un-tag-válido"))
}

func TestLocalizedName_Resolve_SinIngles(t *testing.T) {
	nombres := entity.LocalizedName{"es": "Granito Negro San Gabriel"}
	assert.Equal(t, "Granito Negro San Gabriel", nombres.Resolve("de"),
		"sin inglés se devuelve cualquier valor disponible")
}

func TestLocalizedName_Resolve_Vacio(t *testing.T) {
	assert.Equal(t, "", entity.LocalizedName{}.Resolve("es"))
	var nula entity.LocalizedName
	assert.Equal(t, "", nula.Resolve("es"))
}
