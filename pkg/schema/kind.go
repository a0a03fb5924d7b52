package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the printable document templates managed by the
// editor.
type Kind string

const (
	KindRemittance     Kind = "remittance-slip"
	KindRemittanceAr   Kind = "remittance-ar"
	KindSalesDaily     Kind = "sales-daily"
	KindForeignVisitor Kind = "fv-year-comparison"
	KindArInvoice      Kind = "ar-invoice"
	KindArDeliveryNote Kind = "ar-delivery"
)

// Storage keys are shared by the local store and the remote KV/settings
// services. They never change between versions.
const (
	RemittanceKey     = "reportTemplates.remittance"
	RemittanceArKey   = "reportTemplates.remittanceAr"
	SalesDailyKey     = "reportTemplates.salesDaily"
	ForeignVisitorKey = "reportTemplates.foreignVisitorYearComparison"
	ArInvoiceKey      = "ar.invoiceSettings.v1"
	ArDeliveryNoteKey = "ar.deliveryNoteSettings.v1"
)

// Family groups template kinds by the backend that owns their remote copy.
type Family string

const (
	FamilySalesManagement    Family = "sales-management-system"
	FamilySalesReport        Family = "sales-report"
	FamilyForeignVisitor     Family = "foreign-visitor-system"
	FamilyAccountsReceivable Family = "accounts-receivable"
)

// ErrUnknownKind is returned when a kind identifier is not registered.
var ErrUnknownKind = errors.New("schema: unknown template kind")

// Descriptor describes a template kind as listed in the editor sidebar.
type Descriptor struct {
	Kind       Kind   `json:"id"`
	Name       string `json:"name"`
	StorageKey string `json:"key"`
	Family     Family `json:"family"`
	// Flat marks the accounts-receivable settings kinds whose fields live at
	// the top level instead of text/layout groups.
	Flat bool `json:"flat"`
}

var descriptors = []Descriptor{
	{Kind: KindRemittance, Name: "売上金納付書", StorageKey: RemittanceKey, Family: FamilySalesManagement},
	{Kind: KindRemittanceAr, Name: "売掛金納付書", StorageKey: RemittanceArKey, Family: FamilySalesManagement},
	{Kind: KindSalesDaily, Name: "売上日報", StorageKey: SalesDailyKey, Family: FamilySalesReport},
	{Kind: KindForeignVisitor, Name: "インバウンド年別比較", StorageKey: ForeignVisitorKey, Family: FamilyForeignVisitor},
	{Kind: KindArInvoice, Name: "請求書（売掛管理）", StorageKey: ArInvoiceKey, Family: FamilyAccountsReceivable, Flat: true},
	{Kind: KindArDeliveryNote, Name: "納品書（売掛管理）", StorageKey: ArDeliveryNoteKey, Family: FamilyAccountsReceivable, Flat: true},
}

// Kinds returns every template kind in sidebar order.
func Kinds() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// DefaultKind is the kind selected when the editor starts.
func DefaultKind() Kind {
	return descriptors[0].Kind
}

// Lookup returns the descriptor registered for kind.
func Lookup(kind Kind) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Kind == kind {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ParseKind resolves a user supplied identifier. Storage keys are accepted as
// aliases so CLI users can paste either form.
func ParseKind(raw string) (Kind, error) {
	trimmed := strings.TrimSpace(raw)
	for _, d := range descriptors {
		if string(d.Kind) == trimmed || d.StorageKey == trimmed {
			return d.Kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// KindForKey maps a storage key back to its kind.
func KindForKey(key string) (Kind, bool) {
	for _, d := range descriptors {
		if d.StorageKey == key {
			return d.Kind, true
		}
	}
	return "", false
}

// IsAccountsReceivable reports whether kind is stored through the
// device-settings endpoint instead of the KV endpoint.
func (k Kind) IsAccountsReceivable() bool {
	return k == KindArInvoice || k == KindArDeliveryNote
}

// IsRemittance reports whether kind uses the remittance slip layout.
func (k Kind) IsRemittance() bool {
	return k == KindRemittance || k == KindRemittanceAr
}

func (k Kind) String() string {
	return string(k)
}
