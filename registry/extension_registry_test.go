/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExt(t *testing.T) {
	tests := map[string]string{
		"pdf":   ".pdf",
		".PGF":  ".pgf",
		" png ": ".png",
		"":      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeExt(in), "NormalizeExt(%q)", in)
	}
}

func TestExtensionRegistry(t *testing.T) {
	r := NewExtensionRegistry[string]()
	r.Register("graphics", ".pdf", "png")
	r.Register("import", ".PGF")

	v, ok := r.Lookup("PDF")
	assert.True(t, ok)
	assert.Equal(t, "graphics", v)

	v, ok = r.Lookup(".pgf")
	assert.True(t, ok)
	assert.Equal(t, "import", v)

	_, ok = r.Lookup(".svg")
	assert.False(t, ok)

	assert.Equal(t, []string{".pdf", ".pgf", ".png"}, r.Extensions())
}

type indexed struct{ Key string }

func TestIndexMapRegistry(t *testing.T) {
	_, err := RequireIndexMap[indexed]()
	assert.Error(t, err)

	src := map[string]string{"PK": "IDX#{Key}", "SK": "IDX#{Key}"}
	RegisterIndexMap[indexed](src)
	src["PK"] = "mutated"

	m, err := RequireIndexMap[indexed]()
	assert.NoError(t, err)
	assert.Equal(t, "IDX#{Key}", m["PK"])
}
