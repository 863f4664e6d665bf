package model

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Attachment types allowed by EN16931 for BT-125
var extensionMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".xml":  "application/xml",
	".txt":  "text/plain",
}

const defaultMimeType = "application/octet-stream"

// DetectMimeType sniffs the attachment content and falls back to the
// filename extension when the content is inconclusive
func DetectMimeType(filename string, content []byte) string {
	if len(content) > 0 {
		mt := mimetype.Detect(content)
		if mt.String() != "" && !mt.Is(defaultMimeType) && !mt.Is("text/plain") {
			return strings.SplitN(mt.String(), ";", 2)[0]
		}
	}
	if t, ok := extensionMimeTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return t
	}
	if len(content) > 0 {
		return strings.SplitN(mimetype.Detect(content).String(), ";", 2)[0]
	}
	return defaultMimeType
}
