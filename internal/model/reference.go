package model

import "time"

// ReferencedDocument points at an order, contract, delivery note, despatch
// advice or preceding invoice
type ReferencedDocument struct {
	ID        string     `json:"id"`
	IssueDate *time.Time `json:"issue_date,omitempty"`
	LineID    string     `json:"line_id,omitempty"` // Line within the referenced document
}

// AdditionalReferencedDocument is a supporting document, optionally with
// an embedded attachment
type AdditionalReferencedDocument struct {
	ID                string                 `json:"id"`
	IssueDate         *time.Time             `json:"issue_date,omitempty"`
	TypeCode          ReferencedDocumentType `json:"type_code"`
	ReferenceTypeCode string                 `json:"reference_type_code,omitempty"` // UNTDID 1153
	Name              string                 `json:"name,omitempty"`
	URI               string                 `json:"uri,omitempty"`
	Attachment        []byte                 `json:"attachment,omitempty"`
	Filename          string                 `json:"filename,omitempty"`
	MimeType          string                 `json:"mime_type,omitempty"`
}

// AttachmentMimeType returns the stored mime type or detects one
func (d *AdditionalReferencedDocument) AttachmentMimeType() string {
	if d.MimeType != "" {
		return d.MimeType
	}
	return DetectMimeType(d.Filename, d.Attachment)
}

// ProcuringProject is the project the invoice is issued for
type ProcuringProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
