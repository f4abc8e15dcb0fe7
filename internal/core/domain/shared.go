package domain

import "strings"

type ID string

func (id ID) IsEmpty() bool {
	return strings.TrimSpace(string(id)) == ""
}

type Event interface {
	GetName() string
	GetEntityName() string
}
