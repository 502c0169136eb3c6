package utils

import (
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
)

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: "upload.png",
		Header:   h,
		Size:     size,
	}
}

func TestValidateFileUploadAcceptsImages(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/webp", "image/gif"} {
		if err := ValidateFileUpload(fileHeader(ct, 1024)); err != nil {
			t.Errorf("expected %s to be accepted, got: %v", ct, err)
		}
	}
}

func TestValidateFileUploadRejectsWrongType(t *testing.T) {
	err := ValidateFileUpload(fileHeader("application/pdf", 1024))
	if err == nil {
		t.Fatal("expected error for non-image content type")
	}
	if !strings.Contains(err.Error(), "invalid file type") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidateFileUploadRejectsOversize(t *testing.T) {
	err := ValidateFileUpload(fileHeader("image/png", MaxUploadSize+1))
	if err == nil {
		t.Fatal("expected error for oversized file")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestSanitizeValidationErrorNil(t *testing.T) {
	if msg := SanitizeValidationError(nil); msg != "" {
		t.Errorf("expected empty string for nil error, got %q", msg)
	}
}

func TestSanitizeValidationErrorNonValidator(t *testing.T) {
	msg := SanitizeValidationError(errors.New("boom"))
	if msg != "Invalid request body" {
		t.Errorf("expected generic message, got %q", msg)
	}
}
