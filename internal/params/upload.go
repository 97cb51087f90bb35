package params

import (
	"mime/multipart"
	"net/textproto"
)

// UploadFile is an uploaded part that stays on the server side until the
// request ends: small parts in memory, large ones in a temporary file.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Header      textproto.MIMEHeader

	fh *multipart.FileHeader
}

func newUploadFile(fh *multipart.FileHeader) *UploadFile {
	return &UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Header:      fh.Header,
		fh:          fh,
	}
}

// Open returns a reader over the content. The caller closes it.
func (u *UploadFile) Open() (multipart.File, error) {
	return u.fh.Open()
}
