package reconcile

import (
	"errors"
	"fmt"

	"crm-sync/core/fingerprint"
	"crm-sync/core/record"
	"crm-sync/core/schema"
)

// Kind names an entity pass.
type Kind string

const (
	KindDealCreate     Kind = "deal-create"
	KindDealUpdate     Kind = "deal-update"
	KindLineItemCreate Kind = "line-item-create"
	KindProductCreate  Kind = "product-create"
)

// Kinds lists every supported kind in run order.
func Kinds() []Kind {
	return []Kind{KindDealCreate, KindDealUpdate, KindLineItemCreate, KindProductCreate}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrConfiguration, s)
}

// Operation is the remote call a batch performs.
type Operation string

const (
	OperationCreate  Operation = "create"
	OperationUpdate  Operation = "update"
	OperationArchive Operation = "archive"
)

// AssociationRule attaches every created object to a parent resolved by key.
type AssociationRule struct {
	// ParentObjectType is the object type of the parent, e.g. deals.
	ParentObjectType string
	// ParentIDProperty is the unique parent property holding the key.
	ParentIDProperty string
	// ParentKeyColumn is the source column holding the parent key.
	ParentKeyColumn string
	Category        string
	TypeID          int
}

// ArchiveRule archives existing children matching the row keys before writing.
type ArchiveRule struct {
	// ObjectType is the child object type, e.g. line_items.
	ObjectType string
	// KeyProperty is the searchable child property holding the row key.
	KeyProperty string
}

// Descriptor binds the engine to one entity kind.
type Descriptor struct {
	Kind       Kind
	ObjectType string
	Operation  Operation
	Mapping    schema.Mapping

	// Fingerprint, when set, stamps both digest columns before translation.
	Fingerprint *fingerprint.Scope

	// KeyColumn is the source column holding the business key of a row.
	KeyColumn string
	// IDProperty is the unique remote property updates address objects by.
	IDProperty string

	Association     *AssociationRule
	ArchiveChildren *ArchiveRule
}

// Validate checks the descriptor for internal consistency.
func (d Descriptor) Validate() error {
	var errs []error
	if d.Kind == "" {
		errs = append(errs, errors.New("kind is required"))
	}
	if d.ObjectType == "" {
		errs = append(errs, errors.New("object type is required"))
	}
	if d.KeyColumn == "" {
		errs = append(errs, errors.New("key column is required"))
	}
	switch d.Operation {
	case OperationCreate:
	case OperationUpdate:
		if d.IDProperty == "" {
			errs = append(errs, errors.New("update requires an id property"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported operation %q", d.Operation))
	}
	if a := d.Association; a != nil && (a.ParentObjectType == "" || a.ParentIDProperty == "" || a.ParentKeyColumn == "") {
		errs = append(errs, errors.New("association rule is incomplete"))
	}
	if a := d.ArchiveChildren; a != nil && (a.ObjectType == "" || a.KeyProperty == "") {
		errs = append(errs, errors.New("archive rule is incomplete"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: descriptor %s: %w", ErrConfiguration, d.Kind, err)
	}
	return nil
}

// RequiredColumns returns every column the descriptor reads, fingerprint fields included.
func (d Descriptor) RequiredColumns() []string {
	var cols []string
	if d.Fingerprint != nil {
		cols = append(cols, d.Fingerprint.FullFields()...)
	}
	cols = append(cols, d.KeyColumn)
	if d.Association != nil {
		cols = append(cols, d.Association.ParentKeyColumn)
	}
	return cols
}

// Check validates the descriptor and a source header without touching the remote store.
// Mapping sources that are fingerprint columns are satisfied by stamping.
func (d Descriptor) Check(h *record.Header) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := record.Require(h, string(d.Kind), d.RequiredColumns()); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if d.Fingerprint != nil {
		h = h.Extend(fingerprint.ColumnFull, fingerprint.ColumnBusiness)
	}
	if err := d.Mapping.Validate(h); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}
