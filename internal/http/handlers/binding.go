package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/media"
)

const codeInvalidRequest = "invalid_request"

var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// parseQuantity accepts whole numbers, including integral decimals such as
// "2.0" or "3e0". "2.5", "", and "abc" are rejected.
func parseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apierr.Validation(codeInvalidRequest, "quantity is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() || d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(maxQuantity) {
		return 0, apierr.Validation("invalid_quantity", "quantity must be a positive integer")
	}
	return int(d.IntPart()), nil
}

func numberString(n json.Number) string {
	return strings.TrimSpace(n.String())
}

// emailFrom reads the account email from a JSON body field, falling back to
// the query string. DELETE bodies are dropped by some clients.
func emailFrom(c *gin.Context, bodyEmail string) string {
	if e := strings.TrimSpace(bodyEmail); e != "" {
		return e
	}
	return strings.TrimSpace(c.Query("email"))
}

// bindOptionalJSON decodes a JSON body when one is present. An empty body is
// not an error.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apierr.Validation(codeInvalidRequest, "invalid JSON body")
	}
	return nil
}

func readFileHeader(fh *multipart.FileHeader, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = media.DefaultMaxBytes
	}
	if fh.Size > int64(maxBytes) {
		return nil, apierr.Validation("invalid_image", media.ErrTooLarge.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apierr.Validation("invalid_image", "unreadable upload")
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, int64(maxBytes)+1))
	if err != nil {
		return nil, apierr.Validation("invalid_image", "unreadable upload")
	}
	if len(raw) > maxBytes {
		return nil, apierr.Validation("invalid_image", media.ErrTooLarge.Error())
	}
	return raw, nil
}

// formFile reads a single uploaded file. A missing file yields nil, nil.
func formFile(c *gin.Context, field string, maxBytes int) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apierr.Validation(codeInvalidRequest, fmt.Sprintf("invalid multipart field %q", field))
	}
	return readFileHeader(fh, maxBytes)
}

// formValues returns every value submitted under field or field[].
func formValues(c *gin.Context, field string) []string {
	if vals := c.PostFormArray(field); len(vals) > 0 {
		return vals
	}
	return c.PostFormArray(field + "[]")
}

func formFiles(c *gin.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	if fhs := form.File[field]; len(fhs) > 0 {
		return fhs
	}
	return form.File[field+"[]"]
}
