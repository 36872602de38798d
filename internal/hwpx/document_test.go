package hwpx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlankDocument(t *testing.T) {
	doc, err := NewBlank()
	require.NoError(t, err)
	require.Len(t, doc.Sections(), 1)
	require.Len(t, doc.Paragraphs(), 1)
	assert.Equal(t, "", doc.Paragraphs()[0].Text())
	assert.NotEmpty(t, doc.Header().Styles())
}

func TestBytesRoundTrip(t *testing.T) {
	doc, err := NewBlank()
	require.NoError(t, err)
	doc.AddParagraph("가나다 본문")
	doc.AddTable(2, 2)

	data, err := doc.Bytes()
	require.NoError(t, err)

	reopened, err := FromBytes(data)
	require.NoError(t, err)
	paragraphs := reopened.Paragraphs()
	require.Len(t, paragraphs, 3)
	assert.Equal(t, "가나다 본문", paragraphs[1].Text())
	require.Len(t, reopened.Tables(), 1)
	assert.Len(t, reopened.Tables()[0].Rows(), 2)
}

func TestMimetypeIsFirstAndValidated(t *testing.T) {
	doc, err := NewBlank()
	require.NoError(t, err)
	data, err := doc.Bytes()
	require.NoError(t, err)

	// The stored container must open again, and the mimetype bytes at the
	// start of the archive are the uncompressed literal.
	_, err = FromBytes(data)
	require.NoError(t, err)
	assert.Contains(t, string(data[:128]), MimeType)

	_, err = FromBytes([]byte("not a zip at all"))
	assert.Equal(t, CodeParseError, ErrorCode(err))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.hwpx"))
	assert.Equal(t, CodeDocumentNotFound, ErrorCode(err))
}

func TestSaveAndOpen(t *testing.T) {
	doc, err := NewBlank()
	require.NoError(t, err)
	doc.AddParagraph("저장 확인")

	path := filepath.Join(t.TempDir(), "doc.hwpx")
	require.NoError(t, doc.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "저장 확인", reopened.Paragraphs()[1].Text())
}

func TestSetPartXMLResyncsSection(t *testing.T) {
	doc, err := NewBlank()
	require.NoError(t, err)

	replacement := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<hs:sec xmlns:hs="http://www.hancom.co.kr/hwpml/2011/section" xmlns:hp="http://www.hancom.co.kr/hwpml/2011/paragraph">
  <hp:p id="1" paraPrIDRef="0" styleIDRef="0" pageBreak="0" columnBreak="0" merged="0">
    <hp:run charPrIDRef="0"><hp:t>교체된 본문</hp:t></hp:run>
  </hp:p>
</hs:sec>`
	require.NoError(t, doc.SetPartXML("Contents/section0.xml", replacement))
	require.Len(t, doc.Paragraphs(), 1)
	assert.Equal(t, "교체된 본문", doc.Paragraphs()[0].Text())
}

func TestSetPartXMLRejectsBadInput(t *testing.T) {
	doc, err := NewBlank()
	require.NoError(t, err)

	err = doc.SetPartXML("Contents/nope.xml", "<x/>")
	assert.Equal(t, CodeElementNotFound, ErrorCode(err))

	err = doc.SetPartXML("Contents/section0.xml", "<unbalanced")
	assert.Equal(t, CodeParseError, ErrorCode(err))
}

func TestUntouchedPartsSurviveResave(t *testing.T) {
	doc, err := NewBlank()
	require.NoError(t, err)
	original, ok := doc.Package().Part("version.xml")
	require.True(t, ok)

	doc.AddParagraph("변경")
	data, err := doc.Bytes()
	require.NoError(t, err)

	reopened, err := FromBytes(data)
	require.NoError(t, err)
	roundTripped, ok := reopened.Package().Part("version.xml")
	require.True(t, ok)
	assert.Equal(t, original, roundTripped)
}
