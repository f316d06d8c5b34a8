package duoledger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// maxSecurityLogs caps the on-device audit trail of failed login attempts.
// Oldest entries are evicted first.
const maxSecurityLogs = 20

// LogStatus classifies a failed login attempt.
type LogStatus string

const (
	LogWrongPassword     LogStatus = "WRONG_PASSWORD"
	LogUnauthorizedEmail LogStatus = "UNAUTHORIZED_EMAIL"
)

// Charge is a cost recorded by the designer: one unit of billable work.
type Charge struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	AddedBy     string          `json:"addedBy"`
	Timestamp   int64           `json:"timestamp"`
}

// Payment is money recorded by the client, flowing the opposite direction
// of a Charge but structurally parallel to it.
type Payment struct {
	ID        string          `json:"id"`
	Date      Date            `json:"date"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	AddedBy   string          `json:"addedBy"`
	Timestamp int64           `json:"timestamp"`
}

// PriceTemplate is a reusable preset that seeds a new charge's type and
// amount. It has no lifecycle beyond create and delete.
type PriceTemplate struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// SecurityLogEntry records one failed login attempt. Entries never leave
// the device: they are stripped from every relay payload and from exports.
type SecurityLogEntry struct {
	ID             string    `json:"id"`
	AttemptedEmail string    `json:"attemptedEmail"`
	Timestamp      int64     `json:"timestamp"`
	Date           string    `json:"date"`
	Status         LogStatus `json:"status"`
}

// Ledger is the single persisted document shared by the two parties.
//
// Charges and payments are kept in insertion order: the order entries were
// recorded, not necessarily date order. UpdatedAt is a logical clock
// (wall-clock milliseconds at the last sync-eligible mutation) used purely
// for conflict resolution; security-log mutations never bump it.
type Ledger struct {
	Charges      []Charge           `json:"charges"`
	Payments     []Payment          `json:"payments"`
	Templates    []PriceTemplate    `json:"templates"`
	SecurityLogs []SecurityLogEntry `json:"securityLogs"`
	UpdatedAt    int64              `json:"updatedAt"`
}

// NewLedger creates an empty ledger seeded with the default price templates.
func NewLedger() *Ledger {
	return &Ledger{
		Charges:      []Charge{},
		Payments:     []Payment{},
		SecurityLogs: []SecurityLogEntry{},
		Templates: []PriceTemplate{
			{ID: "1", Name: "Background Change", Amount: decimal.NewFromInt(500)},
			{ID: "2", Name: "Photo Retouch", Amount: decimal.NewFromInt(300)},
			{ID: "3", Name: "Album Basic", Amount: decimal.NewFromInt(6000)},
			{ID: "4", Name: "Album Premium", Amount: decimal.NewFromInt(9000)},
		},
	}
}

// NewID returns a fresh unique identifier for a ledger entity.
func NewID() string { return uuid.NewString() }

// NewCharge creates a charge with a fresh id and creation timestamp.
func NewCharge(on Date, typ, description string, amount decimal.Decimal, addedBy string) Charge {
	return Charge{
		ID:          NewID(),
		Date:        on,
		Type:        typ,
		Description: description,
		Amount:      amount,
		AddedBy:     addedBy,
		Timestamp:   time.Now().UnixMilli(),
	}
}

// NewPayment creates a payment with a fresh id and creation timestamp.
func NewPayment(on Date, method string, amount decimal.Decimal, note, addedBy string) Payment {
	return Payment{
		ID:        NewID(),
		Date:      on,
		Method:    method,
		Amount:    amount,
		Note:      note,
		AddedBy:   addedBy,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewSecurityLog creates a security log entry for a failed login attempt.
func NewSecurityLog(attemptedEmail string, status LogStatus) SecurityLogEntry {
	now := time.Now()
	return SecurityLogEntry{
		ID:             NewID(),
		AttemptedEmail: attemptedEmail,
		Timestamp:      now.UnixMilli(),
		Date:           now.Format("2006-01-02 15:04:05"),
		Status:         status,
	}
}

// touch bumps the logical clock. Called by every sync-eligible mutation.
func (l *Ledger) touch() { l.UpdatedAt = time.Now().UnixMilli() }

// AppendCharge appends a charge, preserving insertion order, and bumps the clock.
func (l *Ledger) AppendCharge(c Charge) {
	l.Charges = append(l.Charges, c)
	l.touch()
}

// AppendPayment appends a payment, preserving insertion order, and bumps the clock.
func (l *Ledger) AppendPayment(p Payment) {
	l.Payments = append(l.Payments, p)
	l.touch()
}

// SetTemplates replaces the price templates and bumps the clock.
func (l *Ledger) SetTemplates(ts []PriceTemplate) {
	l.Templates = ts
	l.touch()
}

// AppendSecurityLog appends a security log entry, evicting the oldest entry
// once the cap is reached. It deliberately does not bump the clock: the
// security log is local-only and must never trigger an overwrite race.
func (l *Ledger) AppendSecurityLog(e SecurityLogEntry) {
	l.SecurityLogs = append(l.SecurityLogs, e)
	if len(l.SecurityLogs) > maxSecurityLogs {
		l.SecurityLogs = l.SecurityLogs[len(l.SecurityLogs)-maxSecurityLogs:]
	}
}

// ClearSecurityLogs empties the security log. Idempotent, does not bump the clock.
func (l *Ledger) ClearSecurityLogs() {
	l.SecurityLogs = []SecurityLogEntry{}
}

// Template returns the template with this name, or nil if unknown.
func (l *Ledger) Template(name string) *PriceTemplate {
	for i := range l.Templates {
		if l.Templates[i].Name == name {
			return &l.Templates[i]
		}
	}
	return nil
}

// TotalCosts sums all charge amounts.
func (l *Ledger) TotalCosts() decimal.Decimal {
	total := decimal.Zero
	for _, c := range l.Charges {
		total = total.Add(c.Amount)
	}
	return total
}

// TotalPaid sums all payment amounts.
func (l *Ledger) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range l.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Balance is the net position: payments minus costs. Negative means the
// client still owes the designer.
func (l *Ledger) Balance() decimal.Decimal {
	return l.TotalPaid().Sub(l.TotalCosts())
}

// Stripped returns a copy of the ledger with the security log emptied,
// suitable for transmission to the relay or for export. The slice header is
// always non-nil so the wire payload carries "securityLogs": [].
func (l *Ledger) Stripped() *Ledger {
	stripped := *l
	stripped.SecurityLogs = []SecurityLogEntry{}
	return &stripped
}

// normalize replaces nil entity slices with empty ones, so documents decoded
// from sparse JSON behave like freshly created ones.
func (l *Ledger) normalize() {
	if l.Charges == nil {
		l.Charges = []Charge{}
	}
	if l.Payments == nil {
		l.Payments = []Payment{}
	}
	if l.Templates == nil {
		l.Templates = []PriceTemplate{}
	}
	if l.SecurityLogs == nil {
		l.SecurityLogs = []SecurityLogEntry{}
	}
}

// DecodeLedger decodes a ledger document from JSON.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var l Ledger
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("could not decode ledger document: %w", err)
	}
	l.normalize()
	return &l, nil
}

// EncodeLedger encodes a ledger document as JSON.
func EncodeLedger(w io.Writer, l *Ledger) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("could not encode ledger document: %w", err)
	}
	return nil
}
