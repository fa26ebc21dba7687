package attachment

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/invoicedesk/internal/domain"
)

const testChatID int64 = 7

// pngBytes encodes a small valid PNG for preview generation.
func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageFile(t *testing.T, name string) RawFile {
	return RawFile{Name: name, MimeType: "image/png", Data: pngBytes(t)}
}

func pdfFile(name string) RawFile {
	return RawFile{Name: name, MimeType: "application/pdf", Data: []byte("%PDF-1.4")}
}

func TestAdd_ClassifiesAndCounts(t *testing.T) {
	m := NewManager(5)

	summary := m.Add(testChatID, []RawFile{
		imageFile(t, "receipt.png"),
		pdfFile("invoice.pdf"),
		{Name: "notes.txt", MimeType: "text/plain", Data: []byte("nope")},
	})

	assert.Equal(t, 1, summary.Images)
	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Accepted())

	list := m.List(testChatID)
	require.Len(t, list, 2)
	assert.Equal(t, domain.AttachmentImage, list[0].Kind)
	assert.Equal(t, domain.AttachmentDocument, list[1].Kind)
}

func TestAdd_PDFByExtensionFallback(t *testing.T) {
	m := NewManager(5)

	summary := m.Add(testChatID, []RawFile{
		{Name: "scan.PDF", MimeType: "application/octet-stream", Data: []byte("%PDF-1.4")},
	})

	assert.Equal(t, 1, summary.Documents)
}

func TestAdd_CapacityBound(t *testing.T) {
	m := NewManager(5)

	var batch []RawFile
	for i := 0; i < 8; i++ {
		batch = append(batch, pdfFile(fmt.Sprintf("inv-%d.pdf", i)))
	}
	summary := m.Add(testChatID, batch)

	assert.Equal(t, 5, summary.Documents)
	assert.Equal(t, 3, summary.Dropped)
	assert.Equal(t, 5, m.Count(testChatID))
}

func TestAdd_TruncationPreservesExistingOrder(t *testing.T) {
	m := NewManager(3)
	m.Add(testChatID, []RawFile{pdfFile("first.pdf"), pdfFile("second.pdf")})

	summary := m.Add(testChatID, []RawFile{pdfFile("third.pdf"), pdfFile("fourth.pdf")})

	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.Dropped)

	list := m.List(testChatID)
	require.Len(t, list, 3)
	assert.Equal(t, "first.pdf", list[0].Name)
	assert.Equal(t, "second.pdf", list[1].Name)
	assert.Equal(t, "third.pdf", list[2].Name)
}

func TestAdd_DuplicateFilenamesGetDistinctIDs(t *testing.T) {
	m := NewManager(5)

	m.Add(testChatID, []RawFile{pdfFile("invoice.pdf"), pdfFile("invoice.pdf")})

	list := m.List(testChatID)
	require.Len(t, list, 2)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestAdd_PreviewOnlyForImages(t *testing.T) {
	m := NewManager(5)

	m.Add(testChatID, []RawFile{imageFile(t, "receipt.png"), pdfFile("invoice.pdf")})

	list := m.List(testChatID)
	require.Len(t, list, 2)

	require.NotNil(t, list[0].Preview)
	thumb, err := list[0].Preview.Bytes()
	require.NoError(t, err)
	assert.NotEmpty(t, thumb)

	assert.Nil(t, list[1].Preview)
}

func TestAdd_UndecodableImageStillGetsPreviewHandle(t *testing.T) {
	m := NewManager(5)

	m.Add(testChatID, []RawFile{
		{Name: "broken.png", MimeType: "image/png", Data: []byte("not a png")},
	})

	list := m.List(testChatID)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Preview)

	thumb, err := list[0].Preview.Bytes()
	require.NoError(t, err)
	assert.Empty(t, thumb)
}

func TestRemove_ReleasesPreview(t *testing.T) {
	m := NewManager(5)
	m.Add(testChatID, []RawFile{imageFile(t, "receipt.png"), pdfFile("invoice.pdf")})

	list := m.List(testChatID)
	preview := list[0].Preview

	assert.True(t, m.Remove(testChatID, list[0].ID))
	assert.Equal(t, 1, m.Count(testChatID))
	assert.True(t, preview.Released())

	_, err := preview.Bytes()
	assert.ErrorIs(t, err, domain.ErrPreviewReleased)
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	m := NewManager(5)
	m.Add(testChatID, []RawFile{pdfFile("invoice.pdf")})

	assert.False(t, m.Remove(testChatID, uuid.New()))
	assert.Equal(t, 1, m.Count(testChatID))
}

func TestReset_ReleasesEverything(t *testing.T) {
	m := NewManager(5)
	m.Add(testChatID, []RawFile{imageFile(t, "a.png"), imageFile(t, "b.png"), pdfFile("c.pdf")})

	list := m.List(testChatID)
	cleared := m.Reset(testChatID)

	assert.Equal(t, 3, cleared)
	assert.Zero(t, m.Count(testChatID))
	for _, att := range list {
		if att.Kind == domain.AttachmentImage {
			assert.True(t, att.Preview.Released())
		}
	}
}

func TestPreview_DoubleReleaseFails(t *testing.T) {
	p := domain.NewPreview([]byte("thumb"))

	require.NoError(t, p.Release())
	assert.ErrorIs(t, p.Release(), domain.ErrPreviewReleased)
}

func TestThumbnailSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 320, 100, 50},
		{640, 320, 320, 320, 160},
		{320, 640, 320, 160, 320},
		{5000, 2, 320, 320, 1},
	}

	for _, tt := range tests {
		w, h := thumbnailSize(tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wantW, w, "width for %dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, h, "height for %dx%d", tt.w, tt.h)
	}
}
