// model/keyvalue.go
package model

// KeyValuePair is used for column internal name / display name pairs.
type KeyValuePair[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// DropdownOption is what the presentation layer renders.
type DropdownOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}
