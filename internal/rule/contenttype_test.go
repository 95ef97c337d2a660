package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentType_InfersFromFilePrefix(t *testing.T) {
	r := NewContentType()
	v := Violation{
		FilePath: "modules/proc_installing-clusters.adoc",
		CheckID:  "AsciiDocDITA.ContentType",
		Line:     1,
		Severity: SeverityWarning,
	}

	fix := r.GenerateFix(v, "= Installing clusters\n\nBody.")
	require.NotNil(t, fix)
	assert.Equal(t, OpInsertBefore, fix.Operation)
	assert.Equal(t, 1, fix.Line)
	assert.Equal(t, ":_mod-docs-content-type: PROCEDURE", fix.ReplacementText)
	assert.False(t, fix.RequiresReview)
}

func TestContentType_PlaceholderWhenPrefixUnknown(t *testing.T) {
	r := NewContentType()
	v := Violation{FilePath: "notes.adoc", CheckID: "AsciiDocDITA.ContentType", Line: 1}

	fix := r.GenerateFix(v, "= Notes\n\nBody.")
	require.NotNil(t, fix)
	assert.Equal(t, ":_mod-docs-content-type: TBD", fix.ReplacementText)
	assert.True(t, fix.RequiresReview)
	assert.Less(t, fix.Confidence, 0.9)
}

func TestContentType_DeclinesWhenAttributePresent(t *testing.T) {
	r := NewContentType()
	v := Violation{FilePath: "con_overview.adoc", CheckID: "AsciiDocDITA.ContentType", Line: 1}

	for _, text := range []string{
		":_mod-docs-content-type: CONCEPT\n= Overview",
		":_content-type: CONCEPT\n= Overview",
		":_module-type: CONCEPT\n= Overview",
	} {
		assert.Nil(t, r.GenerateFix(v, text), "text: %q", text)
	}
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "PROCEDURE", DetectContentType(":_mod-docs-content-type: PROCEDURE\n= T"))
	assert.Equal(t, "ASSEMBLY", DetectContentType("= T\n:_content-type: ASSEMBLY"))
	assert.Equal(t, "", DetectContentType("= T\nno attribute"))
}
