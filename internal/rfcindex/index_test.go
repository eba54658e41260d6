package rfcindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = `<?xml version="1.0" encoding="UTF-8"?>
<rfc-index xmlns="http://www.rfc-editor.org/rfc-index">
  <rfc-entry>
    <doc-id>RFC8259</doc-id>
    <title>The JavaScript Object Notation (JSON) Data Interchange Format</title>
    <author><name>T. Bray</name><title>Editor</title></author>
    <date><month>December</month><year>2017</year></date>
    <format><file-format>ASCII</file-format></format>
    <format><file-format>HTML</file-format></format>
    <page-count>16</page-count>
    <keywords><kw>JSON</kw><kw>data interchange</kw></keywords>
    <abstract><p>JavaScript Object Notation (JSON) is a lightweight text format.</p><p>It obsoletes RFC 7159.</p></abstract>
    <draft>draft-ietf-jsonbis-rfc7159bis-04</draft>
    <obsoletes><doc-id>RFC7159</doc-id></obsoletes>
    <is-also><doc-id>STD0090</doc-id></is-also>
    <current-status>INTERNET STANDARD</current-status>
    <publication-status>PROPOSED STANDARD</publication-status>
    <stream>IETF</stream>
    <area>art</area>
    <wg_acronym>jsonbis</wg_acronym>
    <errata-url>https://www.rfc-editor.org/errata/rfc8259</errata-url>
    <doi>10.17487/RFC8259</doi>
  </rfc-entry>
  <rfc-entry>
    <doc-id>RFC7159</doc-id>
    <title>The JavaScript Object Notation (JSON) Data Interchange Format</title>
    <date><month>March</month><year>2014</year></date>
    <current-status>HISTORIC</current-status>
    <publication-status>PROPOSED STANDARD</publication-status>
    <stream>IETF</stream>
  </rfc-entry>
</rfc-index>`

func TestParse(t *testing.T) {
	idx, err := Parse([]byte(sampleIndex))
	require.NoError(t, err)
	require.Len(t, idx.Entries, 2)

	e := idx.Entries[0]
	assert.Equal(t, "RFC8259", e.DocID)
	assert.Equal(t, []string{"ASCII", "HTML"}, e.Formats)
	assert.Equal(t, []string{"JSON", "data interchange"}, e.Keywords)
	assert.Equal(t, []string{"RFC7159"}, e.Obsoletes)
	assert.Empty(t, e.Updates)
	assert.Equal(t, 16, e.PageCount)
	assert.Equal(t, "INTERNET STANDARD", e.CurrentStatus)
	require.Len(t, e.Authors, 1)
	assert.Equal(t, "T. Bray", e.Authors[0].Name)
}

func TestEntry_PublishedDate(t *testing.T) {
	idx, err := Parse([]byte(sampleIndex))
	require.NoError(t, err)

	published := idx.Entries[0].PublishedDate()
	require.NotNil(t, published)
	assert.Equal(t, time.Date(2017, time.December, 1, 0, 0, 0, 0, time.UTC), *published)

	none := (&Entry{}).PublishedDate()
	assert.Nil(t, none)
}

func TestEntry_AbstractText(t *testing.T) {
	idx, err := Parse([]byte(sampleIndex))
	require.NoError(t, err)

	text := idx.Entries[0].AbstractText()
	assert.Contains(t, text, "lightweight text format")
	assert.Contains(t, text, "obsoletes RFC 7159")
}

func TestEntry_CrossRefs(t *testing.T) {
	e := &Entry{IsAlso: []string{"BCP0014", "STD0090", "FYI0001"}}
	bcp, fyi, std := e.CrossRefs()
	assert.Equal(t, "BCP0014", bcp)
	assert.Equal(t, "FYI0001", fyi)
	assert.Equal(t, "STD0090", std)
}
