package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
)

// FilePart is the file section of a multipart upload.
type FilePart struct {
	Field       string // form field name, "file" when empty
	Filename    string
	ContentType string
	Reader      io.Reader
}

// Upload POSTs a multipart/form-data body with one file and optional plain
// fields, decoding the JSON response into out.
func (c *Client) Upload(ctx context.Context, path string, file FilePart, fields map[string]string, out any) error {
	body, contentType, err := encodeMultipart(file, fields)
	if err != nil {
		return err
	}

	return c.Do(ctx, Request{
		Method:  http.MethodPost,
		Path:    path,
		Header:  http.Header{"Content-Type": []string{contentType}},
		RawBody: body,
	}, out)
}

func encodeMultipart(file FilePart, fields map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	field := file.Field
	if field == "" {
		field = "file"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Filename))
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	header.Set("Content-Type", ct)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if file.Reader != nil {
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, "", fmt.Errorf("failed to read upload file: %w", err)
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
