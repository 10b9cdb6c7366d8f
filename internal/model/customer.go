package model

import (
	"fmt"
	"time"
)

// Status specifies where customer is in the sales pipeline
type Status string

const (
	// StatusNew means customer was just added
	StatusNew Status = "New"
	// StatusContacted means sales person already reached customer
	StatusContacted Status = "Contacted"
	// StatusPotential means customer is likely to buy
	StatusPotential Status = "Potential"
	// StatusClosed means deal is closed
	StatusClosed Status = "Closed"
	// StatusLost means customer went away
	StatusLost Status = "Lost"
)

var statusLabels = map[Status]string{
	StatusNew:       "Mới",
	StatusContacted: "Đã Liên Hệ",
	StatusPotential: "Tiềm Năng",
	StatusClosed:    "Đã Chốt",
	StatusLost:      "Đã Mất",
}

// Statuses returns all statuses in pipeline order
func Statuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusPotential, StatusClosed, StatusLost}
}

// Label returns Vietnamese label shown to sales staff
func (s Status) Label() string {
	return statusLabels[s]
}

// Valid reports whether status belongs to the closed set
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts status name or its Vietnamese label
func ParseStatus(raw string) (Status, error) {
	if s := Status(raw); s.Valid() {
		return s, nil
	}

	for s, label := range statusLabels {
		if label == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown customer status %q", raw)
}

// Customer is customer model entity
type Customer struct {
	ID              int64     `json:"id" bson:"_id"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	FullName        string    `json:"fullName" bson:"fullName"`
	Phone           string    `json:"phone" bson:"phone"`
	PreferredModel  string    `json:"preferredModel" bson:"preferredModel"`
	PreferredColor  string    `json:"preferredColor" bson:"preferredColor"`
	ReasonNotBuying string    `json:"reasonNotBuying" bson:"reasonNotBuying"`
	Status          Status    `json:"status" bson:"status"`
}

// NewCustomer holds fields accepted on insert, status is always assigned by catalog
type NewCustomer struct {
	FullName        string
	Phone           string
	PreferredModel  string
	PreferredColor  string
	ReasonNotBuying string
}

// CustomerPatch is partial update, nil fields are left untouched
type CustomerPatch struct {
	FullName        *string
	Phone           *string
	PreferredModel  *string
	PreferredColor  *string
	ReasonNotBuying *string
	Status          *Status
}

// IsEmpty reports whether patch changes nothing
func (p CustomerPatch) IsEmpty() bool {
	return p.FullName == nil && p.Phone == nil && p.PreferredModel == nil &&
		p.PreferredColor == nil && p.ReasonNotBuying == nil && p.Status == nil
}

// MergePatch applies patch to the copy of customer
func (c Customer) MergePatch(patch CustomerPatch) Customer {
	if patch.FullName != nil {
		c.FullName = *patch.FullName
	}

	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}

	if patch.PreferredModel != nil {
		c.PreferredModel = *patch.PreferredModel
	}

	if patch.PreferredColor != nil {
		c.PreferredColor = *patch.PreferredColor
	}

	if patch.ReasonNotBuying != nil {
		c.ReasonNotBuying = *patch.ReasonNotBuying
	}

	if patch.Status != nil {
		c.Status = *patch.Status
	}
	return c
}
