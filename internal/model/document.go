package model

import "time"

// Status is the lifecycle state of a quotation document.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusApproved Status = "approved"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusApproved:
		return true
	}
	return false
}

// Locked reports whether documents in this status reject edits and deletes.
func (s Status) Locked() bool {
	return s == StatusApproved
}

// DocumentFields are the descriptive (non-pricing) inputs of a document.
type DocumentFields struct {
	ProjectName        string     `json:"projectName" validate:"required,max=200"`
	Province           string     `json:"province" validate:"required"`
	Regency            string     `json:"regency"`
	Address            string     `json:"address"`
	ClientName         string     `json:"clientName" validate:"required"`
	ClientPhone        string     `json:"clientPhone" validate:"omitempty,max=30"`
	ClientEmail        string     `json:"clientEmail" validate:"omitempty,email"`
	ProjectCategory    string     `json:"projectCategory"`
	ProjectDescription string     `json:"projectDescription"`
	EstimatedDelivery  *time.Time `json:"estimatedDelivery,omitempty"`
}

// DocumentInput is everything a user edits on a document.
type DocumentInput struct {
	DocumentFields
	EstimateInput
}

// Document is a persisted RAB (quotation).
// Inputs are flattened into the JSON representation.
type Document struct {
	ID              string `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
	Status          Status `json:"status"`
	DocumentFields
	EstimateInput
	Snapshot  *Snapshot  `json:"snapshot"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Snapshot is the price-locked copy of a document taken when it was sent.
type Snapshot struct {
	DocumentFields
	EstimateInput
	EstimateResult
	FrozenAt time.Time `json:"frozenAt"`
}

// NewSnapshot freezes the document's current inputs together with res.
func NewSnapshot(d *Document, res EstimateResult, at time.Time) *Snapshot {
	items := make([]LineItem, len(res.Items))
	copy(items, res.Items)
	res.Items = items
	return &Snapshot{
		DocumentFields: d.DocumentFields,
		EstimateInput:  d.EstimateInput.Clone(),
		EstimateResult: res,
		FrozenAt:       at,
	}
}

// Pricing is how a document's totals must be obtained: either recomputed
// from live inputs or read from a frozen snapshot.
type Pricing interface {
	pricing()
}

// LivePricing means the totals are recomputed against current master data.
type LivePricing struct {
	Input EstimateInput
}

// FrozenPricing means the totals come from the snapshot and never change.
type FrozenPricing struct {
	Snapshot *Snapshot
}

func (LivePricing) pricing()   {}
func (FrozenPricing) pricing() {}

// Pricing returns the pricing source for the document.
// Drafts are always live; sent and approved documents read their snapshot.
func (d *Document) Pricing() Pricing {
	if d.Status != StatusDraft && d.Snapshot != nil {
		return FrozenPricing{Snapshot: d.Snapshot}
	}
	return LivePricing{Input: d.EstimateInput.Clone()}
}

// Quoted returns the descriptive fields and inputs the displayed totals were
// priced from: the snapshot's for a price-locked document, the live ones otherwise.
func (d *Document) Quoted() (DocumentFields, EstimateInput) {
	if p, ok := d.Pricing().(FrozenPricing); ok {
		return p.Snapshot.DocumentFields, p.Snapshot.EstimateInput
	}
	return d.DocumentFields, d.EstimateInput
}

// Apply overwrites the document's inputs with in. The destination key is
// derived from the province and regency.
func (d *Document) Apply(in DocumentInput) {
	d.DocumentFields = in.DocumentFields
	d.EstimateInput = in.EstimateInput.Clone()
	d.DestinationKey = DestinationKey(in.Province, in.Regency)
}

// Deleted reports whether the document is soft-deleted.
func (d *Document) Deleted() bool {
	return d.DeletedAt != nil
}
