package domain

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Bucket is a budget allocation group derived from the user's finance settings.
type Bucket string

const (
	BucketNone   Bucket = "none"
	BucketNeeds  Bucket = "necessidades"
	BucketWants  Bucket = "desejos"
	BucketFuture Bucket = "futuro"
)

// Buckets lists the policed buckets in display order.
var Buckets = []Bucket{BucketNeeds, BucketWants, BucketFuture}

func (b Bucket) Valid() bool {
	switch b {
	case BucketNone, BucketNeeds, BucketWants, BucketFuture:
		return true
	}
	return false
}

// CategoryType says which transaction direction a category classifies.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "receita"
	CategoryTypeExpense CategoryType = "despesa"
)

// FinancialCategory maps a user's category to a budget bucket.
type FinancialCategory struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Type         CategoryType
	RuleCategory Bucket
	CreatedAt    time.Time
}

func NewFinancialCategory(userID uuid.UUID, name string, categoryType CategoryType, rule Bucket, now time.Time) (*FinancialCategory, error) {
	if userID == uuid.Nil {
		return nil, newValidationError("userId", "is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("nome", "must not be blank")
	}
	if categoryType != CategoryTypeIncome && categoryType != CategoryTypeExpense {
		return nil, newValidationError("tipo", "must be receita or despesa, got %q", string(categoryType))
	}
	if rule == "" {
		rule = BucketNone
	}
	if !rule.Valid() {
		return nil, newValidationError("ruleCategory", "unknown bucket %q", string(rule))
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &FinancialCategory{
		ID:           id,
		UserID:       userID,
		Name:         name,
		Type:         categoryType,
		RuleCategory: rule,
		CreatedAt:    now,
	}, nil
}

type categoryRefKind uint8

const (
	categoryRefNone categoryRefKind = iota
	categoryRefByID
	categoryRefByName
)

// CategoryRef points at a category either by id or by its legacy name.
// The zero value references nothing.
type CategoryRef struct {
	kind categoryRefKind
	id   uuid.UUID
	name string
}

func CategoryByID(id uuid.UUID) CategoryRef {
	return CategoryRef{kind: categoryRefByID, id: id}
}

func CategoryByName(name string) CategoryRef {
	return CategoryRef{kind: categoryRefByName, name: name}
}

func (r CategoryRef) IsZero() bool {
	return r.kind == categoryRefNone
}

func (r CategoryRef) String() string {
	switch r.kind {
	case categoryRefByID:
		return r.id.String()
	case categoryRefByName:
		return r.name
	}
	return ""
}

// Resolve finds the referenced category among categories. Names are matched
// case-insensitively after trimming. Returns nil when nothing matches.
func (r CategoryRef) Resolve(categories []*FinancialCategory) *FinancialCategory {
	switch r.kind {
	case categoryRefByID:
		for _, c := range categories {
			if c.ID == r.id {
				return c
			}
		}
	case categoryRefByName:
		want := normalizeCategoryName(r.name)
		if want == "" {
			return nil
		}
		for _, c := range categories {
			if normalizeCategoryName(c.Name) == want {
				return c
			}
		}
	}
	return nil
}

func normalizeCategoryName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
